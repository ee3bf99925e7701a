package manifest

import "time"

// Source identifies one manifest ledger. Each source has its own table so a
// backfill of one feed never scans another feed's history.
type Source string

const (
	SourceFile   Source = "file"
	SourceAPI    Source = "api"
	SourceExcel  Source = "excel"
	SourceEvents Source = "events"
	SourceMock   Source = "mock"
)

const (
	StatusInProgress = "IN_PROGRESS"
	StatusSuccess    = "SUCCESS"
	StatusFailed     = "FAILED"
)

// Entry is one ledger row. Entries are only ever appended; a retry of a failed
// key writes a new row rather than touching the old one.
type Entry struct {
	ID            int64
	SourceKey     string
	LoadStartTime time.Time
	LoadEndTime   *time.Time
	Status        string
	RowsProcessed int64
	ErrorMessage  string
}
