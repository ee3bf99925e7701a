package manifest

import "context"

type Tracker interface {
	// IsProcessed reports whether any SUCCESS entry exists for the key.
	IsProcessed(ctx context.Context, source Source, sourceKey string) (bool, error)
	// Record appends one entry to the source's ledger.
	Record(ctx context.Context, source Source, entry Entry) error
}
