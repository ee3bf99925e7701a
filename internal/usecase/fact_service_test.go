package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
	"github.com/matchday-data/epl-warehouse/internal/platform/normalize"
)

func factTestDims() *fakeDims {
	return &fakeDims{
		teams:    map[string]int64{"Arsenal": 10, "Chelsea": 11},
		players:  map[string]int64{"Bukayo Saka": 100},
		referees: map[string]int64{"M Oliver": 200},
		stadiums: map[string]int64{"Emirates Stadium": 300},
		seasons:  map[string]int64{"2023/2024": 400},
		dates:    map[string]int64{"2023-08-16": 500},
	}
}

func TestFactServiceLoadsMatchesWithResolvedKeys(t *testing.T) {
	day := time.Date(2023, 8, 16, 0, 0, 0, 0, time.UTC)
	store := &fakeStaging{
		matchRows: []staging.MatchRow{{
			MatchDate: day, Season: "2023/2024",
			HomeTeam: "Arsenal", AwayTeam: "Chelsea",
			Referee: "M Oliver", FTHomeGoals: 2, FTAwayGoals: 1, FTResult: "H",
			FileName: "E0Season_20232024.csv",
		}},
		teamRows: []staging.TeamRow{{TeamName: "Arsenal FC", Stadium: "Emirates Stadium"}},
	}
	facts := &fakeFacts{}
	svc := NewFactService(store, factTestDims(), facts, &fakeMappings{}, logging.NewNop())

	report, err := svc.LoadMatches(context.Background())
	if err != nil {
		t.Fatalf("load matches: %v", err)
	}
	if report.FailedCount != 0 || len(facts.matches) != 1 {
		t.Fatalf("unexpected outcome: report=%+v matches=%d", report, len(facts.matches))
	}

	got := facts.matches[0]
	if got.HomeTeamID != 10 || got.AwayTeamID != 11 {
		t.Fatalf("wrong team keys: %+v", got)
	}
	if got.RefereeID != 200 || got.SeasonID != 400 || got.DateID != 500 {
		t.Fatalf("wrong dimension keys: %+v", got)
	}
	if got.StadiumID != 300 {
		t.Fatalf("expected home ground via staged team, got %d", got.StadiumID)
	}
}

func TestFactServiceSubstitutesSentinelsOnMisses(t *testing.T) {
	day := time.Date(2023, 8, 16, 0, 0, 0, 0, time.UTC)
	store := &fakeStaging{matchRows: []staging.MatchRow{{
		MatchDate: day, Season: "1999/2000",
		HomeTeam: "Wimbledon", AwayTeam: "Arsenal",
		Referee: "Unknown Ref", FileName: "old.csv",
	}}}
	facts := &fakeFacts{}
	svc := NewFactService(store, factTestDims(), facts, &fakeMappings{}, logging.NewNop())

	if _, err := svc.LoadMatches(context.Background()); err != nil {
		t.Fatalf("load matches: %v", err)
	}
	got := facts.matches[0]
	if got.HomeTeamID != dimension.SentinelKey {
		t.Fatalf("unknown home team must map to sentinel, got %d", got.HomeTeamID)
	}
	if got.AwayTeamID != 10 {
		t.Fatalf("known away team must still resolve, got %d", got.AwayTeamID)
	}
	if got.RefereeID != dimension.SentinelKey || got.SeasonID != dimension.SentinelKey || got.StadiumID != dimension.SentinelKey {
		t.Fatalf("misses must fall back to sentinel: %+v", got)
	}
}

func TestFactServiceLoadsPlayerStatsWithMissingPlayerSentinel(t *testing.T) {
	store := &fakeStaging{statRows: []staging.PlayerStatRow{
		{PlayerName: "Bukayo Saka", TeamName: "Arsenal", SeasonName: "2023/2024", Goals: 14},
		{PlayerName: "Totally Unknown", TeamName: "Arsenal", SeasonName: "2023/2024", Goals: 1},
	}}
	facts := &fakeFacts{}
	svc := NewFactService(store, factTestDims(), facts, &fakeMappings{}, logging.NewNop())

	report, err := svc.LoadPlayerStats(context.Background())
	if err != nil {
		t.Fatalf("load stats: %v", err)
	}
	if report.RowsLoaded() != 2 {
		t.Fatalf("expected 2 rows loaded, got %d", report.RowsLoaded())
	}
	if facts.playerStats[0].PlayerID != 100 {
		t.Fatalf("known player must resolve, got %d", facts.playerStats[0].PlayerID)
	}
	if facts.playerStats[1].PlayerID != dimension.UnknownPlayerKey {
		t.Fatalf("unknown player must map to %d, got %d",
			dimension.UnknownPlayerKey, facts.playerStats[1].PlayerID)
	}
}

func TestNormalizeKeysResolvesCollisionsToLowestKey(t *testing.T) {
	// "Man United" and "Manchester United FC" both fold to "manchester united".
	// Map iteration order varies between runs, so the winner must not depend
	// on it.
	byName := map[string]int64{
		"Man United":           20,
		"Manchester United FC": 10,
		"Chelsea":              11,
	}
	for i := 0; i < 50; i++ {
		out := normalizeKeys(byName, normalize.TeamKey, logging.NewNop(), "team")
		if got := out["manchester united"]; got != 10 {
			t.Fatalf("run %d: colliding names resolved to %d, want 10", i, got)
		}
		if got := out["chelsea"]; got != 11 {
			t.Fatalf("run %d: non-colliding name resolved to %d, want 11", i, got)
		}
	}
}

func TestFactServiceLoadsEventsPerMappedMatch(t *testing.T) {
	store := &fakeStaging{eventRows: []staging.EventRow{
		{StatsBombMatchID: 1, SourceEventID: "e1", EventType: "Shot", PlayerName: "Bukayo Saka", StatsBombTeamID: 746, Minute: 12, Second: 3, Period: 1},
		{StatsBombMatchID: 1, SourceEventID: "e2", EventType: "Goal", PlayerName: "Nobody Known", StatsBombTeamID: 747, Minute: 52, Second: 0, Period: 2},
		{StatsBombMatchID: 1, SourceEventID: "e3", EventType: "Shot", Minute: 150, Period: 4},
		{StatsBombMatchID: 2, SourceEventID: "e4", EventType: "Shot", Minute: 10, Period: 1},
	}}
	mappings := &fakeMappings{
		matchIDs: map[int64]int64{1: 501},
		teamIDs:  map[int64]int64{746: 10},
	}
	facts := &fakeFacts{}
	svc := NewFactService(store, factTestDims(), facts, mappings, logging.NewNop())

	report, err := svc.LoadEvents(context.Background())
	if err != nil {
		t.Fatalf("load events: %v", err)
	}
	if report.SuccessCount != 1 {
		t.Fatalf("expected one loaded match, got %+v", report)
	}

	// Match 2 has no mapping, so its events are dropped whole.
	for _, ev := range facts.events {
		if ev.SourceEventID == "e4" {
			t.Fatal("events of an unmapped match must not load")
		}
	}
	// Minute 150 is out of loadable range.
	if len(facts.events) != 2 {
		t.Fatalf("expected 2 loaded events, got %d", len(facts.events))
	}

	first := facts.events[0]
	if first.MatchID != 501 || first.TeamID != 10 || first.PlayerID != 100 {
		t.Fatalf("wrong resolution: %+v", first)
	}
	if first.Minute != 12 || first.ExtraTime != 0 {
		t.Fatalf("regulation event must keep raw minute and zero extra time: %+v", first)
	}

	second := facts.events[1]
	if second.TeamID != dimension.SentinelKey {
		t.Fatalf("unmapped team must fall back to sentinel, got %d", second.TeamID)
	}
	if second.PlayerID != dimension.UnknownPlayerKey {
		t.Fatalf("unknown player must map to %d, got %d", dimension.UnknownPlayerKey, second.PlayerID)
	}
	// Second half, raw minute 52: stored minute stays 52, extra time is 7.
	if second.Minute != 52 || second.ExtraTime != 7 {
		t.Fatalf("second-half minute handling wrong: %+v", second)
	}
}
