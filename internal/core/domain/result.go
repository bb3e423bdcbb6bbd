package domain

import "time"

// CheckKind names one of the independently invokable checks.
type CheckKind string

const (
	CheckCounts    CheckKind = "counts"
	CheckColumns   CheckKind = "columns"
	CheckDocuments CheckKind = "documents"
	CheckLifecycle CheckKind = "lifecycle"
)

// AllChecks lists the checks in the order a full run executes them.
var AllChecks = []CheckKind{CheckCounts, CheckColumns, CheckDocuments, CheckLifecycle}

// CountResult is the outcome of a record-count check.
type CountResult struct {
	RelationalCount int            `json:"relational_count"`
	IndexCount      int            `json:"index_count"`
	Mismatch        *CountMismatch `json:"mismatch,omitempty"`
}

// Discrepancies returns the mismatch, if any.
func (r *CountResult) Discrepancies() []Discrepancy {
	if r == nil || r.Mismatch == nil {
		return nil
	}
	return []Discrepancy{*r.Mismatch}
}

// ColumnResult is the outcome of a column-set check.
type ColumnResult struct {
	RelationalColumns []string           `json:"relational_columns"`
	IndexColumns      []string           `json:"index_columns"`
	Mismatch          *ColumnSetMismatch `json:"mismatch,omitempty"`
}

// Discrepancies returns the mismatch, if any.
func (r *ColumnResult) Discrepancies() []Discrepancy {
	if r == nil || r.Mismatch == nil {
		return nil
	}
	return []Discrepancy{*r.Mismatch}
}

// DocumentResult is the outcome of a keyed document comparison.
// RelationalCount and IndexCount count every input document,
// including those for which no key could be derived.
type DocumentResult struct {
	RelationalCount int `json:"relational_count"`
	IndexCount      int `json:"index_count"`

	RelationalKeyed int `json:"relational_keyed"`
	IndexKeyed      int `json:"index_keyed"`
	Matched         int `json:"matched"`

	OnlyInRelational []DocumentKey   `json:"only_in_relational"`
	OnlyInIndex      []DocumentKey   `json:"only_in_index"`
	FieldMismatches  []FieldMismatch `json:"field_mismatches"`

	// HasFieldDiscrepancies is set when any compared key had a FieldMismatch.
	HasFieldDiscrepancies bool `json:"has_field_discrepancies"`
}

// Discrepancies flattens the set difference and field mismatches.
func (r *DocumentResult) Discrepancies() []Discrepancy {
	if r == nil {
		return nil
	}
	var out []Discrepancy
	if len(r.OnlyInRelational) > 0 || len(r.OnlyInIndex) > 0 {
		out = append(out, SetMismatch{OnlyInRelational: r.OnlyInRelational, OnlyInIndex: r.OnlyInIndex})
	}
	for _, m := range r.FieldMismatches {
		out = append(out, m)
	}
	return out
}

// LifecycleResult is the outcome of validating index lifecycle state.
type LifecycleResult struct {
	Checked    int                  `json:"checked"`
	Violations []LifecycleViolation `json:"violations"`
}

// DiscrepancyCount is the primary signal of a lifecycle pass.
func (r *LifecycleResult) DiscrepancyCount() int {
	if r == nil {
		return 0
	}
	return len(r.Violations)
}

// Discrepancies returns one entry per violating document.
func (r *LifecycleResult) Discrepancies() []Discrepancy {
	if r == nil {
		return nil
	}
	out := make([]Discrepancy, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v)
	}
	return out
}

// RunReport collects the results of one run over a profile.
// A nil result means the check was not requested or failed.
type RunReport struct {
	RunID      string    `json:"run_id"`
	Profile    string    `json:"profile"`
	DocType    string    `json:"doctype"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Counts    *CountResult     `json:"counts,omitempty"`
	Columns   *ColumnResult    `json:"columns,omitempty"`
	Documents *DocumentResult  `json:"documents,omitempty"`
	Lifecycle *LifecycleResult `json:"lifecycle,omitempty"`

	// Errors holds check failures keyed by check name.
	Errors map[CheckKind]string `json:"errors,omitempty"`
}

// Discrepancies returns every discrepancy across all checks.
func (r *RunReport) Discrepancies() []Discrepancy {
	if r == nil {
		return nil
	}
	var out []Discrepancy
	out = append(out, r.Counts.Discrepancies()...)
	out = append(out, r.Columns.Discrepancies()...)
	out = append(out, r.Documents.Discrepancies()...)
	out = append(out, r.Lifecycle.Discrepancies()...)
	return out
}

// Failed reports whether the run found discrepancies or a check errored.
func (r *RunReport) Failed() bool {
	return len(r.Discrepancies()) > 0 || len(r.Errors) > 0
}
