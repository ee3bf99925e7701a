package staging

import "context"

type Repository interface {
	InsertMatchRows(ctx context.Context, rows []MatchRow) (int64, error)
	InsertTeamRows(ctx context.Context, rows []TeamRow) (int64, error)
	InsertPlayerRows(ctx context.Context, rows []PlayerRow) (int64, error)
	InsertRefereeRows(ctx context.Context, rows []RefereeRow) (int64, error)
	InsertPlayerStatRows(ctx context.Context, rows []PlayerStatRow) (int64, error)
	InsertEventRows(ctx context.Context, rows []EventRow) (int64, error)
	InsertSBMatchRows(ctx context.Context, rows []SBMatchRow) (int64, error)

	ListMatchFiles(ctx context.Context) ([]string, error)
	ListMatchRows(ctx context.Context, fileName string) ([]MatchRow, error)
	ListTeamRows(ctx context.Context) ([]TeamRow, error)
	ListPlayerStatRows(ctx context.Context) ([]PlayerStatRow, error)
	ListEventMatchIDs(ctx context.Context) ([]int64, error)
	ListEventRows(ctx context.Context, statsBombMatchID int64) ([]EventRow, error)
	ListEventTeams(ctx context.Context) ([]EventTeam, error)
	ListSBMatchRows(ctx context.Context) ([]SBMatchRow, error)

	// CleanNames rewrites staged names in place (trim everywhere, title case
	// for players) and flips cleaned rows to StatusCleaned. Returns rows
	// touched per table.
	CleanNames(ctx context.Context) (map[string]int64, error)

	// TruncateForCleanup empties the staging tables. Manifests, mappings and
	// the run log are never in its scope.
	TruncateForCleanup(ctx context.Context) error
}
