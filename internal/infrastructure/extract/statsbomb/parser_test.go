package statsbomb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

const eventsJSON = `[
  {
    "id": "a1b2c3",
    "period": 2,
    "minute": 52,
    "second": 14,
    "type": {"name": "Shot"},
    "player": {"id": 3064, "name": "Erling Haaland"},
    "team": {"id": 746, "name": "Manchester City"}
  },
  {
    "id": "d4e5f6",
    "period": 1,
    "minute": 0,
    "second": 0,
    "type": {"name": "Starting XI"},
    "team": {"id": 37, "name": "Burnley"}
  },
  {
    "id": "",
    "period": 1,
    "minute": 3,
    "second": 9,
    "type": {"name": "Pass"}
  }
]`

func TestParseEvents(t *testing.T) {
	rows, skipped, err := ParseEvents([]byte(eventsJSON), 3754058)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, skipped)

	shot := rows[0]
	assert.Equal(t, int64(3754058), shot.StatsBombMatchID)
	assert.Equal(t, "a1b2c3", shot.SourceEventID)
	assert.Equal(t, "Shot", shot.EventType)
	assert.Equal(t, "Erling Haaland", shot.PlayerName)
	assert.Equal(t, int64(746), shot.StatsBombTeamID)
	assert.Equal(t, 52, shot.Minute)
	assert.Equal(t, 2, shot.Period)
	assert.Equal(t, staging.StatusLoaded, shot.Status)

	lineup := rows[1]
	assert.Empty(t, lineup.PlayerName)
	assert.Equal(t, "Burnley", lineup.TeamName)
}

func TestParseEventsRejectsMalformedJSON(t *testing.T) {
	_, _, err := ParseEvents([]byte(`{"not":"an array"`), 1)
	assert.Error(t, err)
}

func TestParseMatches(t *testing.T) {
	matchesJSON := `[
	  {
	    "match_id": 3754058,
	    "match_date": "2023-08-11",
	    "home_team": {"home_team_id": 37, "home_team_name": "Burnley"},
	    "away_team": {"away_team_id": 746, "away_team_name": "Manchester City"}
	  }
	]`

	rows, err := ParseMatches([]byte(matchesJSON))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	m := rows[0]
	assert.Equal(t, int64(3754058), m.StatsBombMatchID)
	assert.Equal(t, "2023-08-11", m.MatchDate.Format("2006-01-02"))
	assert.Equal(t, "Burnley", m.HomeTeam)
	assert.Equal(t, "Manchester City", m.AwayTeam)
}

func TestParseMatchesBadDate(t *testing.T) {
	_, err := ParseMatches([]byte(`[{"match_id": 1, "match_date": "11/08/2023"}]`))
	assert.Error(t, err)
}

func TestMatchIDFromFileName(t *testing.T) {
	id, err := MatchIDFromFileName("3754058.json")
	require.NoError(t, err)
	assert.Equal(t, int64(3754058), id)

	_, err = MatchIDFromFileName("notes.json")
	assert.Error(t, err)
}
