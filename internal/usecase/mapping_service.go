package usecase

import (
	"context"
	"fmt"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/domain/fact"
	"github.com/matchday-data/epl-warehouse/internal/domain/mapping"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
	"github.com/matchday-data/epl-warehouse/internal/platform/normalize"
)

type MappingReport struct {
	TeamsResolved    int
	TeamsUnresolved  int
	MatchesResolved  int
	MatchesUnmatched int
}

// MappingService resolves StatsBomb identities against the warehouse. A miss
// never creates a sentinel mapping row; the row simply stays absent and the
// miss is logged.
type MappingService struct {
	staging  staging.Repository
	dims     dimension.Repository
	facts    fact.Repository
	mappings mapping.Repository
	logger   *logging.Logger
}

func NewMappingService(
	stagingRepo staging.Repository,
	dims dimension.Repository,
	facts fact.Repository,
	mappings mapping.Repository,
	logger *logging.Logger,
) *MappingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MappingService{
		staging:  stagingRepo,
		dims:     dims,
		facts:    facts,
		mappings: mappings,
		logger:   logger,
	}
}

// Run populates both mapping tables. It must run after dimensions and the
// fact_match load; re-running re-resolves and upserts the same keys.
func (s *MappingService) Run(ctx context.Context) (MappingReport, error) {
	var report MappingReport

	teamsResolved, teamsMissed, err := s.resolveTeams(ctx)
	if err != nil {
		return report, err
	}
	report.TeamsResolved = teamsResolved
	report.TeamsUnresolved = teamsMissed

	matchesResolved, matchesMissed, err := s.resolveMatches(ctx)
	if err != nil {
		return report, err
	}
	report.MatchesResolved = matchesResolved
	report.MatchesUnmatched = matchesMissed

	return report, nil
}

func (s *MappingService) resolveTeams(ctx context.Context) (int, int, error) {
	eventTeams, err := s.staging.ListEventTeams(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list staged event teams: %w", err)
	}
	if len(eventTeams) == 0 {
		return 0, 0, nil
	}

	teamKeys, err := s.dims.TeamKeysByName(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load dim_team keys: %w", err)
	}
	byNormalized := normalizeKeys(teamKeys, normalize.TeamKey, s.logger, "team")

	items := make([]mapping.TeamMapping, 0, len(eventTeams))
	missed := 0
	for _, et := range eventTeams {
		teamID, ok := byNormalized[normalize.TeamKey(et.TeamName)]
		if !ok {
			missed++
			s.logger.Warn("statsbomb team unresolved",
				"statsbomb_team_id", et.StatsBombTeamID, "name", et.TeamName)
			continue
		}
		items = append(items, mapping.TeamMapping{
			StatsBombTeamID:   et.StatsBombTeamID,
			TeamID:            teamID,
			StatsBombTeamName: et.TeamName,
		})
	}

	if _, err := s.mappings.UpsertTeamMappings(ctx, items); err != nil {
		return 0, 0, fmt.Errorf("upsert team mappings: %w", err)
	}
	return len(items), missed, nil
}

func (s *MappingService) resolveMatches(ctx context.Context) (int, int, error) {
	sbMatches, err := s.staging.ListSBMatchRows(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list staged statsbomb matches: %w", err)
	}
	if len(sbMatches) == 0 {
		return 0, 0, nil
	}

	matchKeys, err := s.facts.ListMatchKeys(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load fact_match keys: %w", err)
	}
	byNatural := make(map[string]int64, len(matchKeys))
	for _, mk := range matchKeys {
		byNatural[matchNaturalKey(mk.MatchDate.Format("2006-01-02"), mk.HomeTeamName, mk.AwayTeamName)] = mk.MatchID
	}

	items := make([]mapping.MatchMapping, 0, len(sbMatches))
	missed := 0
	for _, sb := range sbMatches {
		key := matchNaturalKey(sb.MatchDate.Format("2006-01-02"), sb.HomeTeam, sb.AwayTeam)
		matchID, ok := byNatural[key]
		if !ok {
			missed++
			s.logger.Warn("statsbomb match unresolved",
				"statsbomb_match_id", sb.StatsBombMatchID,
				"date", sb.MatchDate.Format("2006-01-02"),
				"home", sb.HomeTeam, "away", sb.AwayTeam)
			continue
		}
		items = append(items, mapping.MatchMapping{
			StatsBombMatchID: sb.StatsBombMatchID,
			MatchID:          matchID,
			MatchDate:        sb.MatchDate,
			HomeTeam:         sb.HomeTeam,
			AwayTeam:         sb.AwayTeam,
		})
	}

	if _, err := s.mappings.UpsertMatchMappings(ctx, items); err != nil {
		return 0, 0, fmt.Errorf("upsert match mappings: %w", err)
	}
	return len(items), missed, nil
}

func matchNaturalKey(date, home, away string) string {
	return date + "|" + normalize.TeamKey(home) + "|" + normalize.TeamKey(away)
}
