package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

// insertChunkSize keeps multi-row inserts under the Postgres 65535 bind-arg
// limit with room to spare for the widest staging row.
const insertChunkSize = 500

// cleanupTables is the truncate scope of the CLEANUP phase. Manifests,
// mappings, fact tables and etl_log are deliberately not listed.
var cleanupTables = []string{
	"stg_match_raw",
	"stg_team_raw",
	"stg_player_raw",
	"stg_referee_raw",
	"stg_player_stats_raw",
	"stg_events_raw",
	"stg_sb_match_raw",
}

type StagingRepository struct {
	db *sqlx.DB
}

func NewStagingRepository(db *sqlx.DB) *StagingRepository {
	return &StagingRepository{db: db}
}

func (r *StagingRepository) InsertMatchRows(ctx context.Context, rows []staging.MatchRow) (int64, error) {
	models := make([]matchRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newMatchRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_match_raw", models)
}

func (r *StagingRepository) InsertTeamRows(ctx context.Context, rows []staging.TeamRow) (int64, error) {
	models := make([]teamRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newTeamRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_team_raw", models)
}

func (r *StagingRepository) InsertPlayerRows(ctx context.Context, rows []staging.PlayerRow) (int64, error) {
	models := make([]playerRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newPlayerRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_player_raw", models)
}

func (r *StagingRepository) InsertRefereeRows(ctx context.Context, rows []staging.RefereeRow) (int64, error) {
	models := make([]refereeRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newRefereeRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_referee_raw", models)
}

func (r *StagingRepository) InsertPlayerStatRows(ctx context.Context, rows []staging.PlayerStatRow) (int64, error) {
	models := make([]playerStatRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newPlayerStatRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_player_stats_raw", models)
}

func (r *StagingRepository) InsertEventRows(ctx context.Context, rows []staging.EventRow) (int64, error) {
	models := make([]eventRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, newEventRowModel(row))
	}
	return insertInChunks(ctx, r.db, "stg_events_raw", models)
}

func (r *StagingRepository) InsertSBMatchRows(ctx context.Context, rows []staging.SBMatchRow) (int64, error) {
	models := make([]sbMatchRowModel, 0, len(rows))
	for _, row := range rows {
		models = append(models, sbMatchRowModel{
			StatsBombMatchID: row.StatsBombMatchID,
			MatchDate:        row.MatchDate,
			HomeTeam:         row.HomeTeam,
			AwayTeam:         row.AwayTeam,
			Status:           row.Status,
		})
	}
	return insertInChunks(ctx, r.db, "stg_sb_match_raw", models)
}

func (r *StagingRepository) ListMatchFiles(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("file_name").
		Distinct().
		From("stg_match_raw").
		OrderBy("file_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build match files query: %w", err)
	}

	var files []string
	if err := r.db.SelectContext(ctx, &files, query, args...); err != nil {
		return nil, fmt.Errorf("list staged match files: %w", err)
	}
	return files, nil
}

func (r *StagingRepository) ListMatchRows(ctx context.Context, fileName string) ([]staging.MatchRow, error) {
	query, args, err := qb.Select(matchRowColumns...).
		From("stg_match_raw").
		Where(qb.Eq("file_name", fileName)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build match rows query: %w", err)
	}

	var models []matchRowModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged match rows file=%s: %w", fileName, err)
	}

	out := make([]staging.MatchRow, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *StagingRepository) ListTeamRows(ctx context.Context) ([]staging.TeamRow, error) {
	query, args, err := qb.Select(teamRowColumns...).
		From("stg_team_raw").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build team rows query: %w", err)
	}

	var models []teamRowModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged team rows: %w", err)
	}

	out := make([]staging.TeamRow, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *StagingRepository) ListPlayerStatRows(ctx context.Context) ([]staging.PlayerStatRow, error) {
	query, args, err := qb.Select(playerStatRowColumns...).
		From("stg_player_stats_raw").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build player stat rows query: %w", err)
	}

	var models []playerStatRowModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged player stats: %w", err)
	}

	out := make([]staging.PlayerStatRow, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *StagingRepository) ListEventMatchIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("statsbomb_match_id").
		Distinct().
		From("stg_events_raw").
		OrderBy("statsbomb_match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event match ids query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list staged event match ids: %w", err)
	}
	return ids, nil
}

func (r *StagingRepository) ListEventRows(ctx context.Context, statsBombMatchID int64) ([]staging.EventRow, error) {
	query, args, err := qb.Select(eventRowColumns...).
		From("stg_events_raw").
		Where(qb.Eq("statsbomb_match_id", statsBombMatchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event rows query: %w", err)
	}

	var models []eventRowModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged events match=%d: %w", statsBombMatchID, err)
	}

	out := make([]staging.EventRow, 0, len(models))
	for _, m := range models {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *StagingRepository) ListEventTeams(ctx context.Context) ([]staging.EventTeam, error) {
	query, args, err := qb.Select("statsbomb_team_id", "team_name").
		Distinct().
		From("stg_events_raw").
		Where(qb.Expr("statsbomb_team_id IS NOT NULL"), qb.NotEmpty("team_name")).
		OrderBy("statsbomb_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build event teams query: %w", err)
	}

	var models []struct {
		StatsBombTeamID int64  `db:"statsbomb_team_id"`
		TeamName        string `db:"team_name"`
	}
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged event teams: %w", err)
	}

	out := make([]staging.EventTeam, 0, len(models))
	for _, m := range models {
		out = append(out, staging.EventTeam{StatsBombTeamID: m.StatsBombTeamID, TeamName: m.TeamName})
	}
	return out, nil
}

func (r *StagingRepository) ListSBMatchRows(ctx context.Context) ([]staging.SBMatchRow, error) {
	query, args, err := qb.Select("statsbomb_match_id", "match_date", "home_team", "away_team", "status").
		From("stg_sb_match_raw").
		OrderBy("statsbomb_match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build sb match rows query: %w", err)
	}

	var models []sbMatchRowModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list staged statsbomb matches: %w", err)
	}

	out := make([]staging.SBMatchRow, 0, len(models))
	for _, m := range models {
		out = append(out, staging.SBMatchRow{
			StatsBombMatchID: m.StatsBombMatchID,
			MatchDate:        m.MatchDate,
			HomeTeam:         m.HomeTeam,
			AwayTeam:         m.AwayTeam,
			Status:           m.Status,
		})
	}
	return out, nil
}

func (r *StagingRepository) TruncateForCleanup(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx staging cleanup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range cleanupTables {
		if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit staging cleanup tx: %w", err)
	}

	return nil
}

func insertInChunks[T any](ctx context.Context, db *sqlx.DB, table string, models []T) (int64, error) {
	if len(models) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx insert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for start := 0; start < len(models); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(models) {
			end = len(models)
		}

		query, args, err := qb.InsertModels(table, models[start:end], "")
		if err != nil {
			return 0, fmt.Errorf("build insert %s query: %w", table, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert %s rows: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert %s tx: %w", table, err)
	}

	return total, nil
}
