package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/fact"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

type FactRepository struct {
	db *sqlx.DB
}

func NewFactRepository(db *sqlx.DB) *FactRepository {
	return &FactRepository{db: db}
}

func (r *FactRepository) InsertMatches(ctx context.Context, items []fact.MatchInsert) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx insert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for _, item := range items {
		insertModel := matchInsertModel{
			MatchDate:   item.MatchDate,
			DateID:      item.DateID,
			SeasonID:    item.SeasonID,
			HomeTeamID:  item.HomeTeamID,
			AwayTeamID:  item.AwayTeamID,
			RefereeID:   item.RefereeID,
			StadiumID:   item.StadiumID,
			FTHomeGoals: item.FTHomeGoals,
			FTAwayGoals: item.FTAwayGoals,
			FTResult:    nullableString(item.FTResult),
			HTHomeGoals: item.HTHomeGoals,
			HTAwayGoals: item.HTAwayGoals,
			HTResult:    nullableString(item.HTResult),
			HomeShots:   item.HomeShots,
			AwayShots:   item.AwayShots,
			HomeShotsOT: item.HomeShotsOT,
			AwayShotsOT: item.AwayShotsOT,
			HomeCorners: item.HomeCorners,
			AwayCorners: item.AwayCorners,
			HomeFouls:   item.HomeFouls,
			AwayFouls:   item.AwayFouls,
			HomeYellows: item.HomeYellows,
			AwayYellows: item.AwayYellows,
			HomeReds:    item.HomeReds,
			AwayReds:    item.AwayReds,
		}

		// Replayed natural keys are skipped, never updated; facts are
		// append-only.
		query, args, err := qb.InsertModel("fact_match", insertModel,
			"ON CONFLICT (match_date, home_team_id, away_team_id) DO NOTHING")
		if err != nil {
			return 0, fmt.Errorf("build insert match query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert fact_match %s home=%d away=%d: %w",
				item.MatchDate.Format("2006-01-02"), item.HomeTeamID, item.AwayTeamID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert matches tx: %w", err)
	}

	return total, nil
}

func (r *FactRepository) InsertPlayerStats(ctx context.Context, items []fact.PlayerStatInsert) (int64, error) {
	models := make([]playerStatInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, playerStatInsertModel{
			PlayerID:      item.PlayerID,
			TeamID:        item.TeamID,
			SeasonID:      item.SeasonID,
			Appearances:   item.Appearances,
			Goals:         item.Goals,
			Assists:       item.Assists,
			MinutesPlayed: item.MinutesPlayed,
			YellowCards:   item.YellowCards,
			RedCards:      item.RedCards,
		})
	}
	return insertInChunks(ctx, r.db, "fact_player_stats", models)
}

func (r *FactRepository) InsertEvents(ctx context.Context, items []fact.EventInsert) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx insert events: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var total int64
	for start := 0; start < len(items); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(items) {
			end = len(items)
		}

		models := make([]eventInsertModel, 0, end-start)
		for _, item := range items[start:end] {
			models = append(models, eventInsertModel{
				MatchID:       item.MatchID,
				SourceEventID: item.SourceEventID,
				EventType:     item.EventType,
				PlayerID:      item.PlayerID,
				TeamID:        item.TeamID,
				Minute:        item.Minute,
				ExtraTime:     item.ExtraTime,
				Period:        item.Period,
				Second:        item.Second,
			})
		}

		query, args, err := qb.InsertModels("fact_match_events", models,
			"ON CONFLICT (source_event_id) DO NOTHING")
		if err != nil {
			return 0, fmt.Errorf("build insert events query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert fact_match_events: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert events tx: %w", err)
	}

	return total, nil
}

func (r *FactRepository) ListMatchKeys(ctx context.Context) ([]fact.MatchKey, error) {
	const query = `
SELECT fm.match_id, fm.match_date, ht.team_name AS home_team_name, aw.team_name AS away_team_name
FROM   fact_match fm
JOIN   dim_team ht ON ht.team_id = fm.home_team_id
JOIN   dim_team aw ON aw.team_id = fm.away_team_id
ORDER BY fm.match_id`

	var rows []matchKeyModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list fact_match keys: %w", err)
	}

	out := make([]fact.MatchKey, 0, len(rows))
	for _, row := range rows {
		out = append(out, fact.MatchKey{
			MatchID:      row.MatchID,
			MatchDate:    row.MatchDate,
			HomeTeamName: row.HomeTeamName,
			AwayTeamName: row.AwayTeamName,
		})
	}
	return out, nil
}

type matchInsertModel struct {
	MatchDate   time.Time `db:"match_date"`
	DateID      int64     `db:"date_id"`
	SeasonID    int64     `db:"season_id"`
	HomeTeamID  int64     `db:"home_team_id"`
	AwayTeamID  int64     `db:"away_team_id"`
	RefereeID   int64     `db:"referee_id"`
	StadiumID   int64     `db:"stadium_id"`
	FTHomeGoals int       `db:"ft_home_goals"`
	FTAwayGoals int       `db:"ft_away_goals"`
	FTResult    *string   `db:"ft_result"`
	HTHomeGoals int       `db:"ht_home_goals"`
	HTAwayGoals int       `db:"ht_away_goals"`
	HTResult    *string   `db:"ht_result"`
	HomeShots   int       `db:"home_shots"`
	AwayShots   int       `db:"away_shots"`
	HomeShotsOT int       `db:"home_shots_ot"`
	AwayShotsOT int       `db:"away_shots_ot"`
	HomeCorners int       `db:"home_corners"`
	AwayCorners int       `db:"away_corners"`
	HomeFouls   int       `db:"home_fouls"`
	AwayFouls   int       `db:"away_fouls"`
	HomeYellows int       `db:"home_yellows"`
	AwayYellows int       `db:"away_yellows"`
	HomeReds    int       `db:"home_reds"`
	AwayReds    int       `db:"away_reds"`
}

type playerStatInsertModel struct {
	PlayerID      int64 `db:"player_id"`
	TeamID        int64 `db:"team_id"`
	SeasonID      int64 `db:"season_id"`
	Appearances   int   `db:"appearances"`
	Goals         int   `db:"goals"`
	Assists       int   `db:"assists"`
	MinutesPlayed int   `db:"minutes_played"`
	YellowCards   int   `db:"yellow_cards"`
	RedCards      int   `db:"red_cards"`
}

type eventInsertModel struct {
	MatchID       int64  `db:"match_id"`
	SourceEventID string `db:"source_event_id"`
	EventType     string `db:"event_type"`
	PlayerID      int64  `db:"player_id"`
	TeamID        int64  `db:"team_id"`
	Minute        int    `db:"minute"`
	ExtraTime     int    `db:"extra_time"`
	Period        int    `db:"period"`
	Second        int    `db:"second"`
}

type matchKeyModel struct {
	MatchID      int64     `db:"match_id"`
	MatchDate    time.Time `db:"match_date"`
	HomeTeamName string    `db:"home_team_name"`
	AwayTeamName string    `db:"away_team_name"`
}
