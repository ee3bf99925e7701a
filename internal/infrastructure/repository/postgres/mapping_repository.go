package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/mapping"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

type MappingRepository struct {
	db *sqlx.DB
}

func NewMappingRepository(db *sqlx.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) UpsertTeamMappings(ctx context.Context, items []mapping.TeamMapping) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert team mappings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for _, item := range items {
		insertModel := teamMappingInsertModel{
			StatsBombTeamID:   item.StatsBombTeamID,
			TeamID:            item.TeamID,
			StatsBombTeamName: item.StatsBombTeamName,
		}

		query, args, err := qb.InsertModel("dim_team_mapping", insertModel,
			`ON CONFLICT (statsbomb_team_id) DO UPDATE SET
    team_id = EXCLUDED.team_id,
    statsbomb_team_name = EXCLUDED.statsbomb_team_name`)
		if err != nil {
			return 0, fmt.Errorf("build upsert team mapping query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("upsert team mapping statsbomb_id=%d: %w", item.StatsBombTeamID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert team mappings tx: %w", err)
	}

	return total, nil
}

func (r *MappingRepository) UpsertMatchMappings(ctx context.Context, items []mapping.MatchMapping) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx upsert match mappings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for _, item := range items {
		insertModel := matchMappingInsertModel{
			StatsBombMatchID: item.StatsBombMatchID,
			MatchID:          item.MatchID,
			MatchDate:        item.MatchDate,
			HomeTeam:         item.HomeTeam,
			AwayTeam:         item.AwayTeam,
		}

		query, args, err := qb.InsertModel("dim_match_mapping", insertModel,
			`ON CONFLICT (statsbomb_match_id) DO UPDATE SET
    match_id = EXCLUDED.match_id,
    match_date = EXCLUDED.match_date,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team`)
		if err != nil {
			return 0, fmt.Errorf("build upsert match mapping query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("upsert match mapping statsbomb_id=%d: %w", item.StatsBombMatchID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit upsert match mappings tx: %w", err)
	}

	return total, nil
}

func (r *MappingRepository) TeamIDsByStatsBombID(ctx context.Context) (map[int64]int64, error) {
	return r.idPairs(ctx, "dim_team_mapping", "statsbomb_team_id", "team_id")
}

func (r *MappingRepository) MatchIDsByStatsBombID(ctx context.Context) (map[int64]int64, error) {
	return r.idPairs(ctx, "dim_match_mapping", "statsbomb_match_id", "match_id")
}

func (r *MappingRepository) idPairs(ctx context.Context, table, fromCol, toCol string) (map[int64]int64, error) {
	query, args, err := qb.Select(fromCol+" AS source_id", toCol+" AS target_id").
		From(table).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s pairs query: %w", table, err)
	}

	var rows []struct {
		SourceID int64 `db:"source_id"`
		TargetID int64 `db:"target_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s pairs: %w", table, err)
	}

	out := make(map[int64]int64, len(rows))
	for _, row := range rows {
		out[row.SourceID] = row.TargetID
	}
	return out, nil
}

type teamMappingInsertModel struct {
	StatsBombTeamID   int64  `db:"statsbomb_team_id"`
	TeamID            int64  `db:"team_id"`
	StatsBombTeamName string `db:"statsbomb_team_name"`
}

type matchMappingInsertModel struct {
	StatsBombMatchID int64     `db:"statsbomb_match_id"`
	MatchID          int64     `db:"match_id"`
	MatchDate        time.Time `db:"match_date"`
	HomeTeam         string    `db:"home_team"`
	AwayTeam         string    `db:"away_team"`
}
