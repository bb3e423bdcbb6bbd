package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[profiles.memo]
doctype = "MEMO"

[profiles.memo.relational]
driver = "oracle"
dsn = "oracle://qa:secret@db:1521/ORCL"

[profiles.memo.index]
url = "http://solr:8983/solr/memo"
page_size = 500
requests_per_second = 2.5
tagged_values = true

[profiles.memo.compare]
fields = ["ITEM_NUMBER", "FILENAME"]

[profiles.bv.queries]
parent = "SELECT * FROM bv_items"
`

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0o600))
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".qafinal", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := NewConfigStore(filepath.Join(blocker, "sub"))

	assert.Error(t, err)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "[profiles\nbroken = ")

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_LoadFlattensTables(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, sampleConfig)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "MEMO", store.GetString("profiles.memo.doctype"))
	assert.Equal(t, "oracle://qa:secret@db:1521/ORCL", store.GetString("profiles.memo.relational.dsn"))
	assert.Equal(t, 500, store.GetInt("profiles.memo.index.page_size"))
	assert.True(t, store.GetBool("profiles.memo.index.tagged_values"))
	assert.Equal(t, []string{"ITEM_NUMBER", "FILENAME"}, store.GetStringSlice("profiles.memo.compare.fields"))
	assert.Equal(t, "SELECT * FROM bv_items", store.GetString("profiles.bv.queries.parent"))

	rate, ok := store.Get("profiles.memo.index.requests_per_second")
	require.True(t, ok)
	assert.InDelta(t, 2.5, rate, 0.0001)
}

func TestConfigStore_Keys(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, sampleConfig)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"profiles.bv.queries.parent",
		"profiles.memo.compare.fields",
		"profiles.memo.doctype",
		"profiles.memo.index.page_size",
		"profiles.memo.index.requests_per_second",
		"profiles.memo.index.tagged_values",
		"profiles.memo.index.url",
		"profiles.memo.relational.driver",
		"profiles.memo.relational.dsn",
	}, store.Keys())
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Equal(t, 0, store.GetInt("k"))
	assert.False(t, store.GetBool("k"))
	assert.Nil(t, store.GetStringSlice("k"))
	assert.Equal(t, "", store.GetString("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("profiles.memo.doctype", "MEMO"))
	require.NoError(t, store.Set("profiles.memo.index.page_size", 250))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[profiles.memo.index]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "MEMO", reloaded.GetString("profiles.memo.doctype"))
	assert.Equal(t, 250, reloaded.GetInt("profiles.memo.index.page_size"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, sampleConfig)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Save())

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, store.Keys(), reloaded.Keys())
	assert.Equal(t, store.GetStringSlice("profiles.memo.compare.fields"), reloaded.GetStringSlice("profiles.memo.compare.fields"))
}

func TestConfigStore_SetConflictingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("profiles.memo", "scalar"))

	err = store.Set("profiles.memo.doctype", "MEMO")

	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("profiles.memo.relational.dsn", "oracle://qa:secret@db/ORCL"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "")

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Load_RemovedFileResets(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("a.b", "c"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())

	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("profiles.p.index.page_size", n)
			_ = store.GetInt("profiles.p.index.page_size")
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("profiles.p.index.page_size")
	assert.True(t, ok)
}
