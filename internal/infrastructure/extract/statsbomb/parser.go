// Package statsbomb parses StatsBomb open-data JSON files. Event files are
// named <match_id>.json and hold one array of events; match files hold one
// array of fixture records per competition season.
package statsbomb

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

type rawEvent struct {
	ID     string `json:"id"`
	Period int    `json:"period"`
	Minute int    `json:"minute"`
	Second int    `json:"second"`
	Type   struct {
		Name string `json:"name"`
	} `json:"type"`
	Player *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"player"`
	Team *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

type rawMatch struct {
	MatchID   int64  `json:"match_id"`
	MatchDate string `json:"match_date"`
	HomeTeam  struct {
		Name string `json:"home_team_name"`
	} `json:"home_team"`
	AwayTeam struct {
		Name string `json:"away_team_name"`
	} `json:"away_team"`
}

// MatchIDFromFileName extracts the StatsBomb match id from an event file name
// like "3754058.json".
func MatchIDFromFileName(fileName string) (int64, error) {
	stem := strings.TrimSuffix(fileName, ".json")
	id, err := strconv.ParseInt(stem, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("event file %q is not named by match id: %w", fileName, err)
	}
	return id, nil
}

// ParseEvents decodes one event file. Events without a type name are counted
// as skipped rather than staged; player and team are optional on many event
// kinds and stay empty.
func ParseEvents(data []byte, matchID int64) ([]staging.EventRow, int, error) {
	var events []rawEvent
	if err := sonic.Unmarshal(data, &events); err != nil {
		return nil, 0, fmt.Errorf("decode events for match %d: %w", matchID, err)
	}

	rows := make([]staging.EventRow, 0, len(events))
	skipped := 0
	for _, ev := range events {
		if ev.ID == "" || ev.Type.Name == "" {
			skipped++
			continue
		}

		row := staging.EventRow{
			StatsBombMatchID: matchID,
			SourceEventID:    ev.ID,
			EventType:        ev.Type.Name,
			Minute:           ev.Minute,
			Second:           ev.Second,
			Period:           ev.Period,
			Status:           staging.StatusLoaded,
		}
		if ev.Player != nil {
			row.PlayerName = ev.Player.Name
		}
		if ev.Team != nil {
			row.StatsBombTeamID = ev.Team.ID
			row.TeamName = ev.Team.Name
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// ParseMatches decodes one matches file into staging rows for the match
// resolver.
func ParseMatches(data []byte) ([]staging.SBMatchRow, error) {
	var matches []rawMatch
	if err := sonic.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("decode statsbomb matches: %w", err)
	}

	rows := make([]staging.SBMatchRow, 0, len(matches))
	for _, m := range matches {
		date, err := time.Parse("2006-01-02", m.MatchDate)
		if err != nil {
			return nil, fmt.Errorf("match %d has unparseable date %q: %w", m.MatchID, m.MatchDate, err)
		}
		rows = append(rows, staging.SBMatchRow{
			StatsBombMatchID: m.MatchID,
			MatchDate:        date,
			HomeTeam:         m.HomeTeam.Name,
			AwayTeam:         m.AwayTeam.Name,
			Status:           staging.StatusLoaded,
		})
	}

	return rows, nil
}
