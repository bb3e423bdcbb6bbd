package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

func TestTagStrippers(t *testing.T) {
	assert.Equal(t, "X1", PrefixTag("t X1"))
	assert.Equal(t, "X1", PrefixTag("  X1 "))
	assert.Equal(t, "a b", PrefixTag("t a b"))
	assert.Equal(t, "t X1", NoTag("t X1"))

	second := TokenAt(1)
	assert.Equal(t, "Production", second("t Production"))
	assert.Equal(t, "", second("Production"))
	assert.Equal(t, "Production", TokenAt(0)("Production"))
	assert.Equal(t, "", TokenAt(-1)("a b"))
}

func TestKeyDerivation_Symmetry(t *testing.T) {
	rel := domain.Document{"item_number": "ABC123", "ifs_filepath": `C:\docs\x.pdf`}
	idx := domain.IndexDocument{"item_number": []any{"t ABC123"}, "ifs_filepath": []any{"c:/docs/x.pdf"}}

	relKey, ok := RelationalKey(rel)
	require.True(t, ok)
	idxKey, ok := IndexKey(idx, PrefixTag)
	require.True(t, ok)

	assert.Equal(t, domain.DocumentKey{ItemNumber: "abc123", FilePath: "c:/docs/x.pdf"}, relKey)
	assert.Equal(t, relKey, idxKey)
}

func TestRelationalKey_PathFallback(t *testing.T) {
	tests := []struct {
		name string
		doc  domain.Document
		want string
	}{
		{"ifs preferred", domain.Document{"item_number": "X1", "ifs_filepath": "a/b.pdf", "hfs_filepath": "h/b.pdf"}, "a/b.pdf"},
		{"hfs when ifs null", domain.Document{"item_number": "X1", "ifs_filepath": domain.NullMarker, "hfs_filepath": "h/b.pdf"}, "h/b.pdf"},
		{"hfs when ifs empty", domain.Document{"item_number": "X1", "ifs_filepath": " ", "hfs_filepath": "h/b.pdf"}, "h/b.pdf"},
		{"none when both absent", domain.Document{"item_number": "X1"}, "none"},
		{"raw upper-case columns", domain.Document{"ITEM_NUMBER": "X1", "HFS_FILEPATH": `'H\B.PDF'`}, "h/b.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := RelationalKey(tt.doc)
			require.True(t, ok)
			assert.Equal(t, "x1", key.ItemNumber)
			assert.Equal(t, tt.want, key.FilePath)
		})
	}
}

func TestRelationalKey_MissingItemNumber(t *testing.T) {
	_, ok := RelationalKey(domain.Document{"ifs_filepath": "a"})
	assert.False(t, ok)

	_, ok = RelationalKey(domain.Document{"item_number": domain.NullMarker})
	assert.False(t, ok)
}

func TestIndexKey(t *testing.T) {
	key, ok := IndexKey(domain.IndexDocument{
		"item_number":  []any{`"X1"`},
		"hfs_filepath": []string{`A\B.pdf`},
	}, nil)
	require.True(t, ok)
	assert.Equal(t, domain.DocumentKey{ItemNumber: "x1", FilePath: "a/b.pdf"}, key)

	key, ok = IndexKey(domain.IndexDocument{"item_number": "X2"}, PrefixTag)
	require.True(t, ok)
	assert.Equal(t, "none", key.FilePath)

	_, ok = IndexKey(domain.IndexDocument{"description": "x"}, PrefixTag)
	assert.False(t, ok)

	_, ok = IndexKey(domain.IndexDocument{"item_number": []any{}}, PrefixTag)
	assert.False(t, ok)
}

func TestIndexKey_NullEncodings(t *testing.T) {
	rel := domain.Document{"ITEM_NUMBER": "X1", "IFS_FILEPATH": nil, "HFS_FILEPATH": "h/x.pdf"}
	idx := domain.IndexDocument{
		"item_number":  []any{"t X1"},
		"ifs_filepath": []any{"t " + domain.NullMarker},
		"hfs_filepath": []any{"t h/x.pdf"},
	}

	relKey, ok := RelationalKey(rel)
	require.True(t, ok)
	idxKey, ok := IndexKey(idx, PrefixTag)
	require.True(t, ok)

	assert.Equal(t, domain.DocumentKey{ItemNumber: "x1", FilePath: "h/x.pdf"}, idxKey)
	assert.Equal(t, relKey, idxKey)
}

func TestIndexKey_NullPathFallsBackToNone(t *testing.T) {
	key, ok := IndexKey(domain.IndexDocument{
		"item_number":  []any{"t X1"},
		"ifs_filepath": []any{"t " + domain.NullMarker},
		"hfs_filepath": []any{nil},
	}, PrefixTag)

	require.True(t, ok)
	assert.Equal(t, "none", key.FilePath)
}

func TestIndexKey_NullItemNumber(t *testing.T) {
	for _, v := range []any{
		[]any{"t " + domain.NullMarker},
		[]any{domain.NullMarker},
		[]any{nil},
		"  ",
	} {
		_, relOK := RelationalKey(domain.Document{"item_number": domain.NullMarker, "ifs_filepath": "a/b.pdf"})
		_, idxOK := IndexKey(domain.IndexDocument{"item_number": v, "ifs_filepath": []any{"t a/b.pdf"}}, PrefixTag)

		assert.False(t, relOK)
		assert.False(t, idxOK, "item_number %#v", v)
	}
}

func TestIndexKeyer(t *testing.T) {
	keyer := IndexKeyer(PrefixTag)

	key, ok := keyer(domain.IndexDocument{"item_number": []any{"t X1"}})
	require.True(t, ok)
	assert.Equal(t, "x1", key.ItemNumber)
}
