package etlrun

import "context"

type Recorder interface {
	// Append writes one audit entry. Callers treat a failure as a warning;
	// audit writes never gate the load itself.
	Append(ctx context.Context, entry Entry) error
}
