package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

// sentinelStatements insert the UNKNOWN row per dimension plus the
// known-missing player. GENERATED BY DEFAULT identities accept the explicit
// out-of-band keys; DO NOTHING keeps every statement idempotent.
var sentinelStatements = []string{
	`INSERT INTO dim_player (player_id, player_bk, player_name) VALUES (-1, 'UNKNOWN', 'UNKNOWN')
	 ON CONFLICT (player_id) DO NOTHING`,
	`INSERT INTO dim_player (player_id, player_bk, player_name) VALUES (6808, 'UNKNOWN_MISSING', 'UNKNOWN')
	 ON CONFLICT (player_id) DO NOTHING`,
	`INSERT INTO dim_team (team_id, team_name) VALUES (-1, 'Unknown Team')
	 ON CONFLICT (team_id) DO NOTHING`,
	`INSERT INTO dim_stadium (stadium_id, stadium_name) VALUES (-1, 'Unknown Stadium')
	 ON CONFLICT (stadium_id) DO NOTHING`,
	`INSERT INTO dim_referee (referee_id, referee_name) VALUES (-1, 'Unknown Referee')
	 ON CONFLICT (referee_id) DO NOTHING`,
	`INSERT INTO dim_season (season_id, season_name) VALUES (-1, 'Unknown Season')
	 ON CONFLICT (season_id) DO NOTHING`,
	`INSERT INTO dim_date (date_id, full_date, day, month, year, quarter, day_name)
	 VALUES (-1, '1900-01-01', 1, 1, 1900, 1, 'Monday')
	 ON CONFLICT (date_id) DO NOTHING`,
}

// upsertStatements load each dimension from its staged candidates. Incoming
// NULLs never clobber known values: every DO UPDATE column goes through
// COALESCE(EXCLUDED.col, current).
var upsertStatements = map[dimension.Name][]string{
	dimension.Player: {
		`INSERT INTO dim_player (player_bk, player_name, birth_date, nationality, position, external_id)
		 SELECT DISTINCT ON (TRIM(player_name))
		        TRIM(player_name), TRIM(player_name), birth_date, nationality, position, external_id
		 FROM   stg_player_raw
		 WHERE  player_name IS NOT NULL AND TRIM(player_name) <> ''
		 ORDER BY TRIM(player_name), id DESC
		 ON CONFLICT (player_bk) DO UPDATE SET
		     birth_date  = COALESCE(EXCLUDED.birth_date, dim_player.birth_date),
		     nationality = COALESCE(EXCLUDED.nationality, dim_player.nationality),
		     position    = COALESCE(EXCLUDED.position, dim_player.position),
		     external_id = COALESCE(EXCLUDED.external_id, dim_player.external_id)`,
	},
	dimension.Team: {
		`INSERT INTO dim_team (team_name, team_code, city)
		 SELECT DISTINCT ON (TRIM(team_name))
		        TRIM(team_name), team_code, city
		 FROM   stg_team_raw
		 WHERE  team_name IS NOT NULL AND TRIM(team_name) <> ''
		 ORDER BY TRIM(team_name), id DESC
		 ON CONFLICT (team_name) DO UPDATE SET
		     team_code = COALESCE(EXCLUDED.team_code, dim_team.team_code),
		     city      = COALESCE(EXCLUDED.city, dim_team.city)`,
		`INSERT INTO dim_team (team_name)
		 SELECT DISTINCT TRIM(name) FROM (
		     SELECT home_team AS name FROM stg_match_raw
		     UNION ALL
		     SELECT away_team FROM stg_match_raw
		 ) candidates
		 WHERE name IS NOT NULL AND TRIM(name) <> ''
		 ON CONFLICT (team_name) DO NOTHING`,
	},
	dimension.Stadium: {
		`INSERT INTO dim_stadium (stadium_name)
		 SELECT DISTINCT TRIM(stadium)
		 FROM   stg_team_raw
		 WHERE  stadium IS NOT NULL AND TRIM(stadium) <> ''
		 ON CONFLICT (stadium_name) DO NOTHING`,
	},
	dimension.Referee: {
		`INSERT INTO dim_referee (referee_name, date_of_birth, nationality, premier_league_debut, ref_status)
		 SELECT DISTINCT ON (TRIM(referee_name))
		        TRIM(referee_name), date_of_birth, nationality, premier_league_debut, ref_status
		 FROM   stg_referee_raw
		 WHERE  referee_name IS NOT NULL AND TRIM(referee_name) <> ''
		 ORDER BY TRIM(referee_name), id DESC
		 ON CONFLICT (referee_name) DO UPDATE SET
		     date_of_birth        = COALESCE(EXCLUDED.date_of_birth, dim_referee.date_of_birth),
		     nationality          = COALESCE(EXCLUDED.nationality, dim_referee.nationality),
		     premier_league_debut = COALESCE(EXCLUDED.premier_league_debut, dim_referee.premier_league_debut),
		     ref_status           = COALESCE(EXCLUDED.ref_status, dim_referee.ref_status)`,
		`INSERT INTO dim_referee (referee_name)
		 SELECT DISTINCT TRIM(referee)
		 FROM   stg_match_raw
		 WHERE  referee IS NOT NULL AND TRIM(referee) <> ''
		 ON CONFLICT (referee_name) DO NOTHING`,
	},
	dimension.Season: {
		`INSERT INTO dim_season (season_name)
		 SELECT DISTINCT TRIM(name) FROM (
		     SELECT season AS name FROM stg_match_raw
		     UNION ALL
		     SELECT season FROM stg_team_raw
		     UNION ALL
		     SELECT season_name FROM stg_player_stats_raw
		 ) candidates
		 WHERE name IS NOT NULL AND TRIM(name) <> ''
		 ON CONFLICT (season_name) DO NOTHING`,
	},
	dimension.Date: {
		`INSERT INTO dim_date (full_date, day, month, year, quarter, day_name, is_weekend, is_matchday)
		 SELECT DISTINCT match_date,
		        EXTRACT(DAY FROM match_date)::INT,
		        EXTRACT(MONTH FROM match_date)::INT,
		        EXTRACT(YEAR FROM match_date)::INT,
		        EXTRACT(QUARTER FROM match_date)::INT,
		        TRIM(TO_CHAR(match_date, 'Day')),
		        EXTRACT(ISODOW FROM match_date) IN (6, 7),
		        TRUE
		 FROM   stg_match_raw
		 WHERE  match_date IS NOT NULL
		 ON CONFLICT (full_date) DO UPDATE SET is_matchday = TRUE`,
	},
}

type DimensionRepository struct {
	db *sqlx.DB
}

func NewDimensionRepository(db *sqlx.DB) *DimensionRepository {
	return &DimensionRepository{db: db}
}

func (r *DimensionRepository) EnsureSentinels(ctx context.Context) error {
	for _, stmt := range sentinelStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure sentinel rows: %w", err)
		}
	}
	return nil
}

func (r *DimensionRepository) Upsert(ctx context.Context, name dimension.Name) (int64, error) {
	statements, ok := upsertStatements[name]
	if !ok {
		return 0, fmt.Errorf("unknown dimension %q", name)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert %s: %w", name, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for _, stmt := range statements {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return 0, fmt.Errorf("upsert %s: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert %s tx: %w", name, err)
	}

	return total, nil
}

func (r *DimensionRepository) TeamKeysByName(ctx context.Context) (map[string]int64, error) {
	return r.keysByName(ctx, "dim_team", "team_id", "team_name")
}

func (r *DimensionRepository) PlayerKeysByName(ctx context.Context) (map[string]int64, error) {
	return r.keysByName(ctx, "dim_player", "player_id", "player_name")
}

func (r *DimensionRepository) RefereeKeysByName(ctx context.Context) (map[string]int64, error) {
	return r.keysByName(ctx, "dim_referee", "referee_id", "referee_name")
}

func (r *DimensionRepository) StadiumKeysByName(ctx context.Context) (map[string]int64, error) {
	return r.keysByName(ctx, "dim_stadium", "stadium_id", "stadium_name")
}

func (r *DimensionRepository) SeasonKeysByName(ctx context.Context) (map[string]int64, error) {
	return r.keysByName(ctx, "dim_season", "season_id", "season_name")
}

// DateKeys returns full_date -> date_id with dates keyed in "2006-01-02" form.
func (r *DimensionRepository) DateKeys(ctx context.Context) (map[string]int64, error) {
	query, args, err := qb.Select("date_id", "full_date").
		From("dim_date").
		Where(qb.Expr("date_id <> -1")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build date keys query: %w", err)
	}

	var rows []struct {
		DateID   int64     `db:"date_id"`
		FullDate time.Time `db:"full_date"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list dim_date keys: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.FullDate.Format("2006-01-02")] = row.DateID
	}
	return out, nil
}

func (r *DimensionRepository) keysByName(ctx context.Context, table, keyCol, nameCol string) (map[string]int64, error) {
	query, args, err := qb.Select(keyCol+" AS key", nameCol+" AS name").
		From(table).
		Where(qb.Expr(keyCol + " NOT IN (-1, 6808)")).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s keys query: %w", table, err)
	}

	var rows []struct {
		Key  int64  `db:"key"`
		Name string `db:"name"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s keys: %w", table, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Name] = row.Key
	}
	return out, nil
}
