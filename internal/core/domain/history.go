package domain

import "time"

// RunSummary is the stored header of a past run.
type RunSummary struct {
	RunID         string    `json:"run_id"`
	Profile       string    `json:"profile"`
	DocType       string    `json:"doctype"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Discrepancies int       `json:"discrepancies"`
	FailedChecks  int       `json:"failed_checks"`
}

// Failed reports whether the run found discrepancies or a check errored.
func (s RunSummary) Failed() bool {
	return s.Discrepancies > 0 || s.FailedChecks > 0
}

// Summarize builds the stored header of r.
func (r *RunReport) Summarize() RunSummary {
	return RunSummary{
		RunID:         r.RunID,
		Profile:       r.Profile,
		DocType:       r.DocType,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Discrepancies: len(r.Discrepancies()),
		FailedChecks:  len(r.Errors),
	}
}
