package usecase

// Task statuses shared by the staging and fact load reports.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)
