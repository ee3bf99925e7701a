package mapping

import "context"

type Repository interface {
	// UpsertTeamMappings writes resolved team rows keyed on the StatsBomb id.
	// Re-running with the same resolution is a no-op.
	UpsertTeamMappings(ctx context.Context, items []TeamMapping) (int64, error)
	// UpsertMatchMappings writes resolved match rows keyed on the StatsBomb id.
	UpsertMatchMappings(ctx context.Context, items []MatchMapping) (int64, error)

	// TeamIDsByStatsBombID returns statsbomb_team_id -> dim_team surrogate key.
	TeamIDsByStatsBombID(ctx context.Context) (map[int64]int64, error)
	// MatchIDsByStatsBombID returns statsbomb_match_id -> fact_match id.
	MatchIDsByStatsBombID(ctx context.Context) (map[int64]int64, error)
}
