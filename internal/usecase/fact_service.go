package usecase

import (
	"context"
	"fmt"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/domain/event"
	"github.com/matchday-data/epl-warehouse/internal/domain/fact"
	"github.com/matchday-data/epl-warehouse/internal/domain/mapping"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
	"github.com/matchday-data/epl-warehouse/internal/platform/normalize"
)

type FactUnitResult struct {
	Unit    string
	Status  string
	Rows    int64
	Message string
}

type FactLoadReport struct {
	Units        []FactUnitResult
	SuccessCount int
	FailedCount  int
}

func (r *FactLoadReport) add(unit FactUnitResult) {
	r.Units = append(r.Units, unit)
	if unit.Status == StatusSuccess {
		r.SuccessCount++
	} else if unit.Status == StatusFailed {
		r.FailedCount++
	}
}

func (r *FactLoadReport) RowsLoaded() int64 {
	var total int64
	for _, unit := range r.Units {
		total += unit.Rows
	}
	return total
}

// FactService loads the fact tables. Unresolved dimension references are
// substituted with sentinels, never dropped; only events without a match
// mapping are dropped, since match identity cannot be sentineled.
type FactService struct {
	staging  staging.Repository
	dims     dimension.Repository
	facts    fact.Repository
	mappings mapping.Repository
	logger   *logging.Logger
}

func NewFactService(
	stagingRepo staging.Repository,
	dims dimension.Repository,
	facts fact.Repository,
	mappings mapping.Repository,
	logger *logging.Logger,
) *FactService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FactService{
		staging:  stagingRepo,
		dims:     dims,
		facts:    facts,
		mappings: mappings,
		logger:   logger,
	}
}

type dimLookups struct {
	teamsByKey    map[string]int64
	playersByKey  map[string]int64
	refereesByKey map[string]int64
	stadiumsByKey map[string]int64
	seasonsByName map[string]int64
	datesByDay    map[string]int64
}

func (s *FactService) loadLookups(ctx context.Context) (dimLookups, error) {
	var lk dimLookups

	teams, err := s.dims.TeamKeysByName(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_team keys: %w", err)
	}
	lk.teamsByKey = normalizeKeys(teams, normalize.TeamKey, s.logger, "team")

	players, err := s.dims.PlayerKeysByName(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_player keys: %w", err)
	}
	lk.playersByKey = normalizeKeys(players, normalize.PlayerKey, s.logger, "player")

	referees, err := s.dims.RefereeKeysByName(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_referee keys: %w", err)
	}
	lk.refereesByKey = normalizeKeys(referees, normalize.PlayerKey, s.logger, "referee")

	stadiums, err := s.dims.StadiumKeysByName(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_stadium keys: %w", err)
	}
	lk.stadiumsByKey = normalizeKeys(stadiums, normalize.PlayerKey, s.logger, "stadium")

	seasons, err := s.dims.SeasonKeysByName(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_season keys: %w", err)
	}
	lk.seasonsByName = seasons

	dates, err := s.dims.DateKeys(ctx)
	if err != nil {
		return lk, fmt.Errorf("load dim_date keys: %w", err)
	}
	lk.datesByDay = dates

	return lk, nil
}

// LoadMatches loads fact_match one source file at a time, each in its own
// transaction, so one broken file does not take the rest down.
func (s *FactService) LoadMatches(ctx context.Context) (FactLoadReport, error) {
	var report FactLoadReport

	files, err := s.staging.ListMatchFiles(ctx)
	if err != nil {
		return report, fmt.Errorf("list staged match files: %w", err)
	}
	if len(files) == 0 {
		return report, nil
	}

	lk, err := s.loadLookups(ctx)
	if err != nil {
		return report, err
	}

	stadiumByTeam, err := s.stadiumByTeamKey(ctx)
	if err != nil {
		return report, err
	}

	for _, fileName := range files {
		rows, err := s.staging.ListMatchRows(ctx, fileName)
		if err != nil {
			report.add(FactUnitResult{Unit: fileName, Status: StatusFailed, Message: err.Error()})
			continue
		}

		items := make([]fact.MatchInsert, 0, len(rows))
		for _, row := range rows {
			items = append(items, s.buildMatchInsert(row, lk, stadiumByTeam))
		}

		inserted, err := s.facts.InsertMatches(ctx, items)
		if err != nil {
			report.add(FactUnitResult{Unit: fileName, Status: StatusFailed, Message: err.Error()})
			continue
		}
		report.add(FactUnitResult{Unit: fileName, Status: StatusSuccess, Rows: inserted})
	}

	return report, nil
}

func (s *FactService) buildMatchInsert(row staging.MatchRow, lk dimLookups, stadiumByTeam map[string]int64) fact.MatchInsert {
	homeKey := normalize.TeamKey(row.HomeTeam)

	stadiumID := dimension.SentinelKey
	if id, ok := stadiumByTeam[homeKey]; ok {
		stadiumID = id
	}

	return fact.MatchInsert{
		MatchDate:   row.MatchDate,
		DateID:      lookupOrSentinel(lk.datesByDay, row.MatchDate.Format("2006-01-02")),
		SeasonID:    lookupOrSentinel(lk.seasonsByName, row.Season),
		HomeTeamID:  lookupOrSentinel(lk.teamsByKey, homeKey),
		AwayTeamID:  lookupOrSentinel(lk.teamsByKey, normalize.TeamKey(row.AwayTeam)),
		RefereeID:   lookupOrSentinel(lk.refereesByKey, normalize.PlayerKey(row.Referee)),
		StadiumID:   stadiumID,
		FTHomeGoals: row.FTHomeGoals,
		FTAwayGoals: row.FTAwayGoals,
		FTResult:    row.FTResult,
		HTHomeGoals: row.HTHomeGoals,
		HTAwayGoals: row.HTAwayGoals,
		HTResult:    row.HTResult,
		HomeShots:   row.HomeShots,
		AwayShots:   row.AwayShots,
		HomeShotsOT: row.HomeShotsOT,
		AwayShotsOT: row.AwayShotsOT,
		HomeCorners: row.HomeCorners,
		AwayCorners: row.AwayCorners,
		HomeFouls:   row.HomeFouls,
		AwayFouls:   row.AwayFouls,
		HomeYellows: row.HomeYellows,
		AwayYellows: row.AwayYellows,
		HomeReds:    row.HomeReds,
		AwayReds:    row.AwayReds,
	}
}

// stadiumByTeamKey pairs each staged team with its stadium's dimension key,
// so fact_match can carry the home ground.
func (s *FactService) stadiumByTeamKey(ctx context.Context) (map[string]int64, error) {
	teamRows, err := s.staging.ListTeamRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list staged team rows: %w", err)
	}

	stadiums, err := s.dims.StadiumKeysByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dim_stadium keys: %w", err)
	}
	stadiumsByKey := normalizeKeys(stadiums, normalize.PlayerKey, s.logger, "stadium")

	out := make(map[string]int64, len(teamRows))
	for _, row := range teamRows {
		if row.Stadium == "" {
			continue
		}
		if id, ok := stadiumsByKey[normalize.PlayerKey(row.Stadium)]; ok {
			out[normalize.TeamKey(row.TeamName)] = id
		}
	}
	return out, nil
}

// LoadPlayerStats loads fact_player_stats in one batch. Unknown players get
// the known-missing sentinel, unknown teams and seasons get -1.
func (s *FactService) LoadPlayerStats(ctx context.Context) (FactLoadReport, error) {
	var report FactLoadReport

	rows, err := s.staging.ListPlayerStatRows(ctx)
	if err != nil {
		return report, fmt.Errorf("list staged player stats: %w", err)
	}
	if len(rows) == 0 {
		return report, nil
	}

	lk, err := s.loadLookups(ctx)
	if err != nil {
		return report, err
	}

	items := make([]fact.PlayerStatInsert, 0, len(rows))
	for _, row := range rows {
		playerID, ok := lk.playersByKey[normalize.PlayerKey(row.PlayerName)]
		if !ok {
			playerID = dimension.UnknownPlayerKey
		}
		items = append(items, fact.PlayerStatInsert{
			PlayerID:      playerID,
			TeamID:        lookupOrSentinel(lk.teamsByKey, normalize.TeamKey(row.TeamName)),
			SeasonID:      lookupOrSentinel(lk.seasonsByName, row.SeasonName),
			Appearances:   row.Appearances,
			Goals:         row.Goals,
			Assists:       row.Assists,
			MinutesPlayed: row.MinutesPlayed,
			YellowCards:   row.YellowCards,
			RedCards:      row.RedCards,
		})
	}

	inserted, err := s.facts.InsertPlayerStats(ctx, items)
	if err != nil {
		report.add(FactUnitResult{Unit: "player_stats", Status: StatusFailed, Message: err.Error()})
		return report, nil
	}
	report.add(FactUnitResult{Unit: "player_stats", Status: StatusSuccess, Rows: inserted})
	return report, nil
}

// LoadEvents loads fact_match_events one staged match at a time, each in its
// own transaction. Matches without a mapping are dropped whole; within a
// mapped match, team and player misses fall back to sentinels and rows with
// an out-of-range raw minute are excluded.
func (s *FactService) LoadEvents(ctx context.Context) (FactLoadReport, error) {
	var report FactLoadReport

	matchIDs, err := s.staging.ListEventMatchIDs(ctx)
	if err != nil {
		return report, fmt.Errorf("list staged event match ids: %w", err)
	}
	if len(matchIDs) == 0 {
		return report, nil
	}

	matchMapping, err := s.mappings.MatchIDsByStatsBombID(ctx)
	if err != nil {
		return report, fmt.Errorf("load match mappings: %w", err)
	}
	teamMapping, err := s.mappings.TeamIDsByStatsBombID(ctx)
	if err != nil {
		return report, fmt.Errorf("load team mappings: %w", err)
	}

	players, err := s.dims.PlayerKeysByName(ctx)
	if err != nil {
		return report, fmt.Errorf("load dim_player keys: %w", err)
	}
	playersByKey := normalizeKeys(players, normalize.PlayerKey, s.logger, "player")

	for _, sbMatchID := range matchIDs {
		unit := fmt.Sprintf("events_match_%d", sbMatchID)

		matchID, mapped := matchMapping[sbMatchID]
		if !mapped {
			s.logger.Warn("staged events dropped, match unmapped", "statsbomb_match_id", sbMatchID)
			report.add(FactUnitResult{Unit: unit, Status: StatusSkipped, Message: "match not mapped"})
			continue
		}

		rows, err := s.staging.ListEventRows(ctx, sbMatchID)
		if err != nil {
			report.add(FactUnitResult{Unit: unit, Status: StatusFailed, Message: err.Error()})
			continue
		}

		items := make([]fact.EventInsert, 0, len(rows))
		for _, row := range rows {
			if !event.Loadable(row.Minute) {
				continue
			}

			teamID, ok := teamMapping[row.StatsBombTeamID]
			if !ok {
				teamID = dimension.SentinelKey
			}
			playerID, ok := playersByKey[normalize.PlayerKey(row.PlayerName)]
			if !ok {
				playerID = dimension.UnknownPlayerKey
			}

			items = append(items, fact.EventInsert{
				MatchID:       matchID,
				SourceEventID: row.SourceEventID,
				EventType:     row.EventType,
				PlayerID:      playerID,
				TeamID:        teamID,
				Minute:        row.Minute,
				ExtraTime:     event.DerivedMinute(row.Period, row.Minute),
				Period:        row.Period,
				Second:        row.Second,
			})
		}

		inserted, err := s.facts.InsertEvents(ctx, items)
		if err != nil {
			report.add(FactUnitResult{Unit: unit, Status: StatusFailed, Message: err.Error()})
			continue
		}
		report.add(FactUnitResult{Unit: unit, Status: StatusSuccess, Rows: inserted})
	}

	return report, nil
}

// normalizeKeys folds stored names down to comparison keys. Two rows can
// collapse onto one key when the same entity landed under different spellings;
// the lowest surrogate key wins so resolution is stable across runs, and the
// collision is logged for cleanup.
func normalizeKeys(byName map[string]int64, keyFunc func(string) string, logger *logging.Logger, entity string) map[string]int64 {
	out := make(map[string]int64, len(byName))
	for name, id := range byName {
		key := keyFunc(name)
		existing, ok := out[key]
		if !ok {
			out[key] = id
			continue
		}
		kept, ignored := existing, id
		if id < existing {
			kept, ignored = id, existing
		}
		out[key] = kept
		logger.Warn("names collide after normalization",
			"entity", entity, "key", key, "kept_id", kept, "ignored_id", ignored)
	}
	return out
}

func lookupOrSentinel(m map[string]int64, key string) int64 {
	if key == "" {
		return dimension.SentinelKey
	}
	if id, ok := m[key]; ok {
		return id
	}
	return dimension.SentinelKey
}
