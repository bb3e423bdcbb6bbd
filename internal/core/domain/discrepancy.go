package domain

// DiscrepancyKind classifies a detected difference between the two stores.
type DiscrepancyKind string

const (
	KindCountMismatch      DiscrepancyKind = "count_mismatch"
	KindSetMismatch        DiscrepancyKind = "set_mismatch"
	KindFieldMismatch      DiscrepancyKind = "field_mismatch"
	KindColumnSetMismatch  DiscrepancyKind = "column_set_mismatch"
	KindLifecycleViolation DiscrepancyKind = "lifecycle_violation"
)

// Discrepancy is any difference reported by a check.
type Discrepancy interface {
	Kind() DiscrepancyKind
}

// CountMismatch reports differing record totals.
type CountMismatch struct {
	RelationalCount int `json:"relational_count"`
	IndexCount      int `json:"index_count"`
}

// Kind implements Discrepancy.
func (CountMismatch) Kind() DiscrepancyKind { return KindCountMismatch }

// SetMismatch reports documents present in only one store.
type SetMismatch struct {
	OnlyInRelational []DocumentKey `json:"only_in_relational"`
	OnlyInIndex      []DocumentKey `json:"only_in_index"`
}

// Kind implements Discrepancy.
func (SetMismatch) Kind() DiscrepancyKind { return KindSetMismatch }

// FieldMismatch reports a single field that differs after normalisation.
type FieldMismatch struct {
	Key             DocumentKey `json:"key"`
	Field           string      `json:"field"`
	RelationalValue string      `json:"relational_value"`
	IndexValue      string      `json:"index_value"`
}

// Kind implements Discrepancy.
func (FieldMismatch) Kind() DiscrepancyKind { return KindFieldMismatch }

// ColumnSetMismatch reports field names declared on only one side.
type ColumnSetMismatch struct {
	OnlyInRelational []string `json:"only_in_relational"`
	OnlyInIndex      []string `json:"only_in_index"`
}

// Kind implements Discrepancy.
func (ColumnSetMismatch) Kind() DiscrepancyKind { return KindColumnSetMismatch }

// LifecycleViolation reports an index document that is not released
// or carries an invalid release date.
type LifecycleViolation struct {
	ItemNumber  string `json:"item_number"`
	ReleaseDate string `json:"release_date"`
	Lifecycle   string `json:"lifecycle"`
}

// Kind implements Discrepancy.
func (LifecycleViolation) Kind() DiscrepancyKind { return KindLifecycleViolation }
