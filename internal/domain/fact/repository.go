package fact

import "context"

type Repository interface {
	// InsertMatches writes one file's worth of fact_match rows in a single
	// transaction. Duplicate natural keys are skipped, not updated.
	InsertMatches(ctx context.Context, items []MatchInsert) (int64, error)
	// InsertPlayerStats writes fact_player_stats rows in one transaction.
	InsertPlayerStats(ctx context.Context, items []PlayerStatInsert) (int64, error)
	// InsertEvents writes one staged match's events in a single transaction.
	// Replayed source_event_ids are skipped.
	InsertEvents(ctx context.Context, items []EventInsert) (int64, error)

	// ListMatchKeys returns every fact_match row with its team names resolved.
	ListMatchKeys(ctx context.Context) ([]MatchKey, error)
}
