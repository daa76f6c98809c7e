// Package migrate is the one-time v1 to v2 data migration: legacy
// clients and locations become counterparties, legacy contracts are
// grouped into events and rewritten into the typed contract
// collections. It also carries the report types shared with the
// field-repair tooling.
package migrate

import (
	"time"
)

// RecordError ties one failed record to what went wrong with it.
type RecordError struct {
	ID  string
	Err string
}

// Result aggregates one stage (or repair) run. A record failure never
// aborts a stage; it lands here instead.
type Result struct {
	Total      int
	Successful int
	Failed     int
	Errors     []RecordError
	Duration   time.Duration
}

// RecordError marks one record failed and keeps its error message.
func (r *Result) RecordError(id string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RecordError{ID: id, Err: err.Error()})
}

// StageReport is one orchestrator entry: stages skipped after an abort
// are reported with Ran=false and a nil Result.
type StageReport struct {
	Stage  string
	Ran    bool
	Result *Result
}

// Report is the aggregated outcome of a full pipeline run.
type Report struct {
	DryRun      bool
	Aborted     bool
	Stages      []StageReport
	TotalFailed int
	Duration    time.Duration
}

// Ok reports whether every stage ran and nothing failed.
func (r *Report) Ok() bool {
	return !r.Aborted && r.TotalFailed == 0
}
