package services

import (
	"strings"
	"unicode"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

// missingPath is used when a document has no file path of either kind.
const missingPath = "none"

// TagStripper extracts the real value from an index string value.
// The ETL prefixes some index values with a tag token ("t X1").
type TagStripper func(string) string

// NoTag returns the value unchanged.
func NoTag(s string) string { return s }

// PrefixTag drops the leading tag token when the value has more than one
// whitespace-separated token. Single-token values are returned trimmed.
func PrefixTag(s string) string {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s
	}
	return strings.TrimSpace(s[i:])
}

// TokenAt returns the i-th whitespace-separated token, or "" when the
// value has fewer tokens.
func TokenAt(i int) TagStripper {
	return func(s string) string {
		fields := strings.Fields(s)
		if i < 0 || i >= len(fields) {
			return ""
		}
		return fields[i]
	}
}

// unwrap returns the first element of a multivalued index value.
func unwrap(v any) any {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	case []string:
		if len(t) == 0 {
			return nil
		}
		return t[0]
	default:
		return v
	}
}

// RelationalKey derives the DocumentKey of a relational document.
// Field names are matched case-insensitively so both raw rows and
// normalised documents are accepted.
func RelationalKey(doc domain.Document) (domain.DocumentKey, bool) {
	item, ok := doc.Lookup(fieldItemNumber)
	if !ok || isAbsent(item) {
		return domain.DocumentKey{}, false
	}
	itemNumber := keyPart(stringify(item))
	if itemNumber == "" {
		return domain.DocumentKey{}, false
	}

	path := missingPath
	for _, field := range []string{fieldIFSFilePath, fieldHFSFilePath} {
		if v, ok := doc.Lookup(field); ok && !isAbsent(v) {
			path = stringify(v)
			break
		}
	}

	return domain.DocumentKey{ItemNumber: itemNumber, FilePath: pathPart(path)}, true
}

// IndexKey derives the DocumentKey of an index document. Values are
// unwrapped from their single-element encoding and passed through strip
// before the shared normalisation.
func IndexKey(doc domain.IndexDocument, strip TagStripper) (domain.DocumentKey, bool) {
	if strip == nil {
		strip = NoTag
	}

	item, ok := indexValue(doc, fieldItemNumber, strip)
	if !ok {
		return domain.DocumentKey{}, false
	}
	itemNumber := keyPart(item)
	if itemNumber == "" {
		return domain.DocumentKey{}, false
	}

	path := missingPath
	for _, field := range []string{fieldIFSFilePath, fieldHFSFilePath} {
		if v, ok := indexValue(doc, field, strip); ok {
			path = v
			break
		}
	}

	return domain.DocumentKey{ItemNumber: itemNumber, FilePath: pathPart(path)}, true
}

// indexValue returns the unwrapped, tag-stripped value of field. The
// null encodings the relational side treats as absent are absent here too.
func indexValue(doc domain.IndexDocument, field string, strip TagStripper) (string, bool) {
	v, ok := doc[field]
	if !ok {
		return "", false
	}
	v = unwrap(v)
	if v == nil {
		return "", false
	}
	s := strip(stringify(v))
	if isAbsent(s) {
		return "", false
	}
	return s, true
}

// IndexKeyer binds a TagStripper for use with IndexKey.
func IndexKeyer(strip TagStripper) func(domain.IndexDocument) (domain.DocumentKey, bool) {
	return func(doc domain.IndexDocument) (domain.DocumentKey, bool) {
		return IndexKey(doc, strip)
	}
}

func keyPart(s string) string {
	return strings.ToLower(stripQuotes(strings.TrimSpace(s)))
}

func pathPart(s string) string {
	return strings.ReplaceAll(keyPart(s), `\`, "/")
}

func stripQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(s, `'"`))
}

// isAbsent reports values that cannot form part of a key.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	s := strings.TrimSpace(stringify(v))
	return s == "" || s == domain.NullMarker
}
