package domain

import (
	"fmt"
	"strings"
	"time"
)

// Default profile values.
const (
	DefaultIndexQuery          = "*:*"
	DefaultPageSize            = 2000
	DefaultIndexTimeout        = 10 * time.Second
	DefaultOnlyInRelationalMax = 10
	DefaultOnlyInIndexMax      = 200
	DefaultExpectedLifecycle   = "Production"
	DefaultRelationalLabel     = "Oracle"
	DefaultIndexLabel          = "Solr"
	DefaultRelationalDriver    = "oracle"
)

// DefaultCompareFields are the fields compared for every matched document.
var DefaultCompareFields = []string{
	"ITEM_NUMBER", "DESCRIPTION", "CREATED_BY", "DOC_TYPE",
	"FILENAME", "IFS_FILEPATH", "HFS_FILEPATH", "REV_NUMBER", "RELEASE_DATE",
}

// DefaultIgnoreIndexFields are index-internal bookkeeping fields excluded
// from the column-set comparison.
var DefaultIgnoreIndexFields = []string{
	"_text_", "_nest_path_", "id", "_root_", "_version_", "content", "file_size",
}

// Profile is the configuration for reconciling one document type.
type Profile struct {
	// Name is the profile key in configuration (e.g., "memo").
	Name string

	// DocType is the display name of the document type (e.g., "MEMO").
	DocType string

	// Relational connection.
	RelationalDriver string
	RelationalDSN    string

	// Index connection.
	IndexURL               string
	IndexQuery             string
	PageSize               int
	IndexTimeout           time.Duration
	IndexRequestsPerSecond float64

	// TaggedIndexValues enables stripping of the leading tag token that the
	// ETL prepends to index values (e.g., "t X1" -> "X1").
	TaggedIndexValues bool

	// Queries.
	ParentQuery   string
	ChildQuery    string
	DocumentQuery string

	// Comparison settings.
	CompareFields     []string
	IgnoreIndexFields []string

	// Reporting limits for keys shown in logs. Results always carry the full sets.
	OnlyInRelationalMax int
	OnlyInIndexMax      int

	// ExpectedLifecycle is the terminal lifecycle status every index document must carry.
	ExpectedLifecycle string

	// Labels used in report messages.
	RelationalLabel string
	IndexLabel      string
}

// NewProfile returns a profile populated with defaults.
func NewProfile(name string) Profile {
	return Profile{
		Name:                name,
		DocType:             strings.ToUpper(name),
		RelationalDriver:    DefaultRelationalDriver,
		IndexQuery:          DefaultIndexQuery,
		PageSize:            DefaultPageSize,
		IndexTimeout:        DefaultIndexTimeout,
		TaggedIndexValues:   true,
		CompareFields:       append([]string(nil), DefaultCompareFields...),
		IgnoreIndexFields:   append([]string(nil), DefaultIgnoreIndexFields...),
		OnlyInRelationalMax: DefaultOnlyInRelationalMax,
		OnlyInIndexMax:      DefaultOnlyInIndexMax,
		ExpectedLifecycle:   DefaultExpectedLifecycle,
		RelationalLabel:     DefaultRelationalLabel,
		IndexLabel:          DefaultIndexLabel,
	}
}

// WithDefaults returns a copy of p with unset settings filled from the defaults.
func (p Profile) WithDefaults() Profile {
	d := NewProfile(p.Name)
	if p.DocType == "" {
		p.DocType = d.DocType
	}
	if p.RelationalDriver == "" {
		p.RelationalDriver = d.RelationalDriver
	}
	if p.IndexQuery == "" {
		p.IndexQuery = d.IndexQuery
	}
	if p.PageSize == 0 {
		p.PageSize = d.PageSize
	}
	if p.IndexTimeout == 0 {
		p.IndexTimeout = d.IndexTimeout
	}
	if p.CompareFields == nil {
		p.CompareFields = d.CompareFields
	}
	if p.IgnoreIndexFields == nil {
		p.IgnoreIndexFields = d.IgnoreIndexFields
	}
	if p.OnlyInRelationalMax == 0 {
		p.OnlyInRelationalMax = d.OnlyInRelationalMax
	}
	if p.OnlyInIndexMax == 0 {
		p.OnlyInIndexMax = d.OnlyInIndexMax
	}
	if p.ExpectedLifecycle == "" {
		p.ExpectedLifecycle = d.ExpectedLifecycle
	}
	if p.RelationalLabel == "" {
		p.RelationalLabel = d.RelationalLabel
	}
	if p.IndexLabel == "" {
		p.IndexLabel = d.IndexLabel
	}
	return p
}

// Validate checks the settings every check needs.
func (p *Profile) Validate() error {
	var missing []string
	if p.RelationalDSN == "" {
		missing = append(missing, "relational.dsn")
	}
	if p.IndexURL == "" {
		missing = append(missing, "index.url")
	}
	if p.ParentQuery == "" {
		missing = append(missing, "queries.parent")
	}
	if p.ChildQuery == "" {
		missing = append(missing, "queries.child")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s missing %s", ErrInvalidProfile, p.Name, strings.Join(missing, ", "))
	}
	if p.PageSize <= 0 {
		return fmt.Errorf("%w: %s page size must be positive", ErrInvalidProfile, p.Name)
	}
	return nil
}
