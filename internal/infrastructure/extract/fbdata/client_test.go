package fbdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamsPayload = `{
  "season": {"startDate": "2023-08-11", "endDate": "2024-05-19"},
  "teams": [
    {
      "id": 57,
      "name": "Arsenal FC",
      "shortName": "Arsenal",
      "tla": "ARS",
      "address": "75 Drayton Park, London N5 1BU",
      "venue": "Emirates Stadium",
      "squad": [
        {"id": 3189, "name": "David Raya", "position": "Goalkeeper", "dateOfBirth": "1995-09-15", "nationality": "Spain"},
        {"id": 7889, "name": "Bukayo Saka", "position": "Right Winger", "dateOfBirth": "2001-09-05", "nationality": "England"}
      ]
    }
  ]
}`

func TestFetchTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions/PL/teams", r.URL.Path)
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		assert.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		_, _ = w.Write([]byte(teamsPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Token: "secret-token"})

	resp, raw, err := client.FetchTeams(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, resp.Teams, 1)
	assert.NotEmpty(t, raw)
	assert.Equal(t, "2023/2024", resp.SeasonName())

	team := resp.Teams[0]
	assert.Equal(t, "Arsenal FC", team.Name)
	assert.Equal(t, "ARS", team.TLA)
	require.Len(t, team.Squad, 2)
	assert.Equal(t, "Bukayo Saka", team.Squad[1].Name)
}

func TestFetchTeamsRejectsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"season": {}, "teams": []}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})

	_, _, err := client.FetchTeams(context.Background(), 2023)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed teams payload")
}

func TestFetchTeamsRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(teamsPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 2})

	resp, _, err := client.FetchTeams(context.Background(), 2023)
	require.NoError(t, err)
	assert.Len(t, resp.Teams, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchTeamsDoesNotRetryClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, MaxRetries: 3})

	_, _, err := client.FetchTeams(context.Background(), 2023)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestStagingRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(teamsPayload))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL})
	resp, _, err := client.FetchTeams(context.Background(), 2023)
	require.NoError(t, err)

	teamRows, playerRows := resp.StagingRows("/competitions/PL/teams?season=2023")
	require.Len(t, teamRows, 1)
	require.Len(t, playerRows, 2)

	assert.Equal(t, "Arsenal FC", teamRows[0].TeamName)
	assert.Equal(t, "Emirates Stadium", teamRows[0].Stadium)
	assert.Equal(t, "2023/2024", teamRows[0].Season)
	assert.NotEmpty(t, teamRows[0].RawData)

	saka := playerRows[1]
	assert.Equal(t, "Bukayo Saka", saka.PlayerName)
	assert.Equal(t, "Arsenal FC", saka.TeamName)
	require.NotNil(t, saka.BirthDate)
	assert.Equal(t, "2001-09-05", saka.BirthDate.Format("2006-01-02"))
}
