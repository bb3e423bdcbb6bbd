package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
	"github.com/nvdpcode/qa-final/internal/core/ports/driving"
)

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// profilePrefix is the config key prefix under which profiles live.
const profilePrefix = "profiles."

// Config keys relative to profiles.<name>.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyDocType             = "doctype"
	keyRelationalDriver    = "relational.driver"
	keyRelationalDSN       = "relational.dsn"
	keyIndexURL            = "index.url"
	keyIndexQuery          = "index.query"
	keyIndexPageSize       = "index.page_size"
	keyIndexTimeout        = "index.timeout_seconds"
	keyIndexRate           = "index.requests_per_second"
	keyIndexTagged         = "index.tagged_values"
	keyParentQuery         = "queries.parent"
	keyChildQuery          = "queries.child"
	keyDocumentQuery       = "queries.document"
	keyCompareFields       = "compare.fields"
	keyIgnoreIndexFields   = "compare.ignore_index_fields"
	keyOnlyInRelationalMax = "display.only_in_relational"
	keyOnlyInIndexMax      = "display.only_in_index"
	keyExpectedLifecycle   = "lifecycle.expected_status"
	keyRelationalLabel     = "labels.relational"
	keyIndexLabel          = "labels.index"
)

// ProfileService resolves doctype profiles from configuration.
type ProfileService struct {
	configStore driven.ConfigStore
}

// NewProfileService creates a new profile service.
func NewProfileService(configStore driven.ConfigStore) *ProfileService {
	return &ProfileService{configStore: configStore}
}

// List returns the configured profile names in sorted order.
func (s *ProfileService) List() []string {
	if s.configStore == nil {
		return nil
	}
	seen := make(map[string]struct{})
	for _, key := range s.configStore.Keys() {
		rest, ok := strings.CutPrefix(key, profilePrefix)
		if !ok {
			continue
		}
		name, _, ok := strings.Cut(rest, ".")
		if !ok || name == "" {
			continue
		}
		seen[name] = struct{}{}
	}
	return sortedSet(seen)
}

// Get loads the named profile, filling unset values with defaults.
func (s *ProfileService) Get(name string) (domain.Profile, error) {
	if s.configStore == nil {
		return domain.Profile{}, fmt.Errorf("config store: %w", domain.ErrNotConfigured)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if !s.exists(name) {
		return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, name)
	}

	d := domain.NewProfile(name)
	p := domain.Profile{
		Name:                   name,
		DocType:                s.getString(name, keyDocType, d.DocType),
		RelationalDriver:       s.getString(name, keyRelationalDriver, d.RelationalDriver),
		RelationalDSN:          s.getString(name, keyRelationalDSN, ""),
		IndexURL:               strings.TrimRight(s.getString(name, keyIndexURL, ""), "/"),
		IndexQuery:             s.getString(name, keyIndexQuery, d.IndexQuery),
		PageSize:               s.getInt(name, keyIndexPageSize, d.PageSize),
		IndexTimeout:           time.Duration(s.getInt(name, keyIndexTimeout, int(d.IndexTimeout/time.Second))) * time.Second,
		IndexRequestsPerSecond: s.getFloat(name, keyIndexRate, 0),
		TaggedIndexValues:      s.getBool(name, keyIndexTagged, d.TaggedIndexValues),
		ParentQuery:            s.getString(name, keyParentQuery, ""),
		ChildQuery:             s.getString(name, keyChildQuery, ""),
		DocumentQuery:          s.getString(name, keyDocumentQuery, ""),
		CompareFields:          s.getStringSlice(name, keyCompareFields, d.CompareFields),
		IgnoreIndexFields:      s.getStringSlice(name, keyIgnoreIndexFields, d.IgnoreIndexFields),
		OnlyInRelationalMax:    s.getInt(name, keyOnlyInRelationalMax, d.OnlyInRelationalMax),
		OnlyInIndexMax:         s.getInt(name, keyOnlyInIndexMax, d.OnlyInIndexMax),
		ExpectedLifecycle:      s.getString(name, keyExpectedLifecycle, d.ExpectedLifecycle),
		RelationalLabel:        s.getString(name, keyRelationalLabel, d.RelationalLabel),
		IndexLabel:             s.getString(name, keyIndexLabel, d.IndexLabel),
	}
	return p, nil
}

func (s *ProfileService) exists(name string) bool {
	if name == "" {
		return false
	}
	prefix := profilePrefix + name + "."
	for _, key := range s.configStore.Keys() {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

func profileKey(name, key string) string {
	return profilePrefix + name + "." + key
}

func (s *ProfileService) getString(name, key, defaultVal string) string {
	val := strings.TrimSpace(s.configStore.GetString(profileKey(name, key)))
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *ProfileService) getInt(name, key string, defaultVal int) int {
	val := s.configStore.GetInt(profileKey(name, key))
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *ProfileService) getBool(name, key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(profileKey(name, key)); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(profileKey(name, key))
}

func (s *ProfileService) getFloat(name, key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(profileKey(name, key))
	if !ok {
		return defaultVal
	}
	// TOML numbers are parsed as int64 or float64
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *ProfileService) getStringSlice(name, key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(profileKey(name, key))
	if len(val) == 0 {
		return append([]string(nil), defaultVal...)
	}
	return val
}
