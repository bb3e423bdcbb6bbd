package domain

import (
	"sort"
	"strings"
	"time"
)

// NullMarker is the canonical representation of an absent relational value.
const NullMarker = "#null#"

// TimestampLayout is the canonical string form of relational date/time values.
const TimestampLayout = "2006-01-02 15:04:05"

// Row is a single record as returned by the relational source.
// Keys are column names exactly as the source reported them.
type Row map[string]any

// Document is a relational document. After normalisation every key is
// lower-cased and absent values carry NullMarker.
type Document map[string]any

// IndexDocument is a document as returned by the search index.
// Values are either scalars or single-element slices wrapping a scalar.
// The core never mutates an IndexDocument.
type IndexDocument map[string]any

// DocumentKey identifies the same logical document in both stores.
// Both parts are lower-cased, quote-stripped and use forward slashes.
type DocumentKey struct {
	ItemNumber string `json:"item_number"`
	FilePath   string `json:"file_path"`
}

// String renders the key as "item_number|file_path".
func (k DocumentKey) String() string {
	return k.ItemNumber + "|" + k.FilePath
}

// SchemaField describes one field declared in the index schema.
type SchemaField struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	MultiValued bool   `json:"multiValued,omitempty"`
	Stored      bool   `json:"stored,omitempty"`
}

// Lookup returns the value of a row column, matching the name
// case-insensitively. An exact match wins, then the lower-cased name,
// then the lexically smallest column that differs only in case.
func (r Row) Lookup(name string) (any, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	if v, ok := r[strings.ToLower(name)]; ok {
		return v, true
	}
	match, found := "", false
	for k := range r {
		if strings.EqualFold(k, name) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return nil, false
	}
	return r[match], true
}

// Lookup returns the value of a document field, preferring an exact name
// match and falling back to a case-insensitive one.
func (d Document) Lookup(name string) (any, bool) {
	return Row(d).Lookup(name)
}

// FieldNames returns the sorted lower-cased field names of the document.
func (d Document) FieldNames() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, strings.ToLower(k))
	}
	sort.Strings(names)
	return names
}

// FormatTimestamps rewrites every time.Time value in rows to TimestampLayout.
// Rows are modified in place and returned for convenience.
func FormatTimestamps(rows []Row) []Row {
	for _, row := range rows {
		for k, v := range row {
			switch t := v.(type) {
			case time.Time:
				row[k] = t.Format(TimestampLayout)
			case *time.Time:
				if t != nil {
					row[k] = t.Format(TimestampLayout)
				}
			}
		}
	}
	return rows
}

// SortKeys orders keys by item number then file path.
func SortKeys(keys []DocumentKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ItemNumber != keys[j].ItemNumber {
			return keys[i].ItemNumber < keys[j].ItemNumber
		}
		return keys[i].FilePath < keys[j].FilePath
	})
}
