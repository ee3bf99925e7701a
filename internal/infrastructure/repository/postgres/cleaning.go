package postgres

import (
	"context"
	"fmt"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

type cleaningStep struct {
	table string
	build func() (string, []any, error)
}

// Player names get title case on top of the trim; everything else only loses
// stray whitespace. Already-cleaned rows are left alone so the phase can be
// re-run.
var cleaningSteps = []cleaningStep{
	{
		table: "stg_player_raw",
		build: func() (string, []any, error) {
			return qb.Update("stg_player_raw").
				SetExpr("player_name", "INITCAP(TRIM(player_name))").
				Set("status", staging.StatusCleaned).
				Where(qb.NotEmpty("player_name"), qb.Eq("status", staging.StatusLoaded)).
				ToSQL()
		},
	},
	{
		table: "stg_team_raw",
		build: func() (string, []any, error) {
			return qb.Update("stg_team_raw").
				SetExpr("team_name", "TRIM(team_name)").
				Set("status", staging.StatusCleaned).
				Where(qb.NotEmpty("team_name"), qb.Eq("status", staging.StatusLoaded)).
				ToSQL()
		},
	},
	{
		table: "stg_referee_raw",
		build: func() (string, []any, error) {
			return qb.Update("stg_referee_raw").
				SetExpr("referee_name", "TRIM(referee_name)").
				Set("status", staging.StatusCleaned).
				Where(qb.NotEmpty("referee_name"), qb.Eq("status", staging.StatusLoaded)).
				ToSQL()
		},
	},
	{
		table: "stg_match_raw",
		build: func() (string, []any, error) {
			return qb.Update("stg_match_raw").
				SetExpr("home_team", "TRIM(home_team)").
				SetExpr("away_team", "TRIM(away_team)").
				SetExpr("referee", "TRIM(referee)").
				Set("status", staging.StatusCleaned).
				Where(qb.NotEmpty("home_team"), qb.NotEmpty("away_team"), qb.Eq("status", staging.StatusLoaded)).
				ToSQL()
		},
	},
}

func (r *StagingRepository) CleanNames(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(cleaningSteps))
	for _, step := range cleaningSteps {
		query, args, err := step.build()
		if err != nil {
			return nil, fmt.Errorf("build clean %s query: %w", step.table, err)
		}

		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("clean %s: %w", step.table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			counts[step.table] = n
		}
	}
	return counts, nil
}
