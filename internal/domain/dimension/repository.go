package dimension

import "context"

type Repository interface {
	// EnsureSentinels inserts the UNKNOWN row in every dimension plus the
	// known-missing player row. Idempotent; runs regardless of staging state.
	EnsureSentinels(ctx context.Context) error

	// Upsert loads one dimension from its staged candidates. Returns rows
	// affected as the driver reports them.
	Upsert(ctx context.Context, name Name) (int64, error)

	// TeamKeysByName returns dim_team rows as stored name -> surrogate key.
	TeamKeysByName(ctx context.Context) (map[string]int64, error)
	// PlayerKeysByName returns dim_player rows as stored name -> surrogate key.
	PlayerKeysByName(ctx context.Context) (map[string]int64, error)
	// RefereeKeysByName returns dim_referee rows as stored name -> surrogate key.
	RefereeKeysByName(ctx context.Context) (map[string]int64, error)
	// StadiumKeysByName returns dim_stadium rows as stored name -> surrogate key.
	StadiumKeysByName(ctx context.Context) (map[string]int64, error)
	// SeasonKeysByName returns dim_season rows as stored name -> surrogate key.
	SeasonKeysByName(ctx context.Context) (map[string]int64, error)
	// DateKeys returns dim_date rows as full date (UTC midnight) -> date_id.
	DateKeys(ctx context.Context) (map[string]int64, error)
}
