// Package etlrun models the append-only etl_log audit table and the pipeline
// phase vocabulary. Nothing in the load path ever reads this table back.
package etlrun

import "time"

const (
	PhaseExtract          = "EXTRACT"
	PhaseClean            = "CLEAN"
	PhaseUpsertDimensions = "UPSERT_DIMENSIONS"
	PhaseLoadFactMatch    = "LOAD_FACT_MATCH"
	PhasePopulateMappings = "POPULATE_MAPPINGS"
	PhaseLoadFacts        = "LOAD_FACTS"
	PhaseCleanup          = "CLEANUP"
)

const (
	StatusStarted = "STARTED"
	StatusSuccess = "SUCCESS"
	StatusPartial = "PARTIAL"
	StatusFailed  = "FAILED"
)

type Entry struct {
	JobName       string
	PhaseStep     string
	Status        string
	StartTime     time.Time
	EndTime       *time.Time
	RowsProcessed int64
	Message       string
}
