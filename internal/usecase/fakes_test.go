package usecase

import (
	"context"
	"sync"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/domain/etlrun"
	"github.com/matchday-data/epl-warehouse/internal/domain/fact"
	"github.com/matchday-data/epl-warehouse/internal/domain/manifest"
	"github.com/matchday-data/epl-warehouse/internal/domain/mapping"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

type fakeManifests struct {
	mu           sync.Mutex
	entries      map[manifest.Source][]manifest.Entry
	processedErr error
	recordErr    error
}

func newFakeManifests() *fakeManifests {
	return &fakeManifests{entries: make(map[manifest.Source][]manifest.Entry)}
}

func (f *fakeManifests) IsProcessed(_ context.Context, source manifest.Source, sourceKey string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processedErr != nil {
		return false, f.processedErr
	}
	for _, entry := range f.entries[source] {
		if entry.SourceKey == sourceKey && entry.Status == manifest.StatusSuccess {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeManifests) Record(_ context.Context, source manifest.Source, entry manifest.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries[source] = append(f.entries[source], entry)
	return nil
}

func (f *fakeManifests) entriesFor(source manifest.Source, sourceKey string) []manifest.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []manifest.Entry
	for _, entry := range f.entries[source] {
		if entry.SourceKey == sourceKey {
			out = append(out, entry)
		}
	}
	return out
}

type fakeStaging struct {
	mu          sync.Mutex
	matchRows   []staging.MatchRow
	teamRows    []staging.TeamRow
	playerRows  []staging.PlayerRow
	refereeRows []staging.RefereeRow
	statRows    []staging.PlayerStatRow
	eventRows   []staging.EventRow
	sbMatchRows []staging.SBMatchRow

	insertStatsErr error
	cleanCounts    map[string]int64
	cleanErr       error
	truncateErr    error
	truncated      bool
}

func (f *fakeStaging) InsertMatchRows(_ context.Context, rows []staging.MatchRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchRows = append(f.matchRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertTeamRows(_ context.Context, rows []staging.TeamRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teamRows = append(f.teamRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertPlayerRows(_ context.Context, rows []staging.PlayerRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playerRows = append(f.playerRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertRefereeRows(_ context.Context, rows []staging.RefereeRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refereeRows = append(f.refereeRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertPlayerStatRows(_ context.Context, rows []staging.PlayerStatRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertStatsErr != nil {
		return 0, f.insertStatsErr
	}
	f.statRows = append(f.statRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertEventRows(_ context.Context, rows []staging.EventRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventRows = append(f.eventRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) InsertSBMatchRows(_ context.Context, rows []staging.SBMatchRow) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sbMatchRows = append(f.sbMatchRows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeStaging) ListMatchFiles(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, row := range f.matchRows {
		if !seen[row.FileName] {
			seen[row.FileName] = true
			out = append(out, row.FileName)
		}
	}
	return out, nil
}

func (f *fakeStaging) ListMatchRows(_ context.Context, fileName string) ([]staging.MatchRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []staging.MatchRow
	for _, row := range f.matchRows {
		if row.FileName == fileName {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStaging) ListTeamRows(_ context.Context) ([]staging.TeamRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]staging.TeamRow(nil), f.teamRows...), nil
}

func (f *fakeStaging) ListPlayerStatRows(_ context.Context) ([]staging.PlayerStatRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]staging.PlayerStatRow(nil), f.statRows...), nil
}

func (f *fakeStaging) ListEventMatchIDs(_ context.Context) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]bool)
	var out []int64
	for _, row := range f.eventRows {
		if !seen[row.StatsBombMatchID] {
			seen[row.StatsBombMatchID] = true
			out = append(out, row.StatsBombMatchID)
		}
	}
	return out, nil
}

func (f *fakeStaging) ListEventRows(_ context.Context, statsBombMatchID int64) ([]staging.EventRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []staging.EventRow
	for _, row := range f.eventRows {
		if row.StatsBombMatchID == statsBombMatchID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeStaging) ListEventTeams(_ context.Context) ([]staging.EventTeam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int64]bool)
	var out []staging.EventTeam
	for _, row := range f.eventRows {
		if row.StatsBombTeamID != 0 && !seen[row.StatsBombTeamID] {
			seen[row.StatsBombTeamID] = true
			out = append(out, staging.EventTeam{StatsBombTeamID: row.StatsBombTeamID, TeamName: row.TeamName})
		}
	}
	return out, nil
}

func (f *fakeStaging) ListSBMatchRows(_ context.Context) ([]staging.SBMatchRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]staging.SBMatchRow(nil), f.sbMatchRows...), nil
}

func (f *fakeStaging) CleanNames(_ context.Context) (map[string]int64, error) {
	if f.cleanErr != nil {
		return nil, f.cleanErr
	}
	if f.cleanCounts != nil {
		return f.cleanCounts, nil
	}
	return map[string]int64{}, nil
}

func (f *fakeStaging) TruncateForCleanup(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.truncateErr != nil {
		return f.truncateErr
	}
	f.truncated = true
	return nil
}

type fakeDims struct {
	sentinelErr   error
	sentinelCalls int
	upsertErrs    map[dimension.Name]error
	upsertRows    map[dimension.Name]int64
	upsertOrder   []dimension.Name

	teams    map[string]int64
	players  map[string]int64
	referees map[string]int64
	stadiums map[string]int64
	seasons  map[string]int64
	dates    map[string]int64
}

func (f *fakeDims) EnsureSentinels(context.Context) error {
	f.sentinelCalls++
	return f.sentinelErr
}

func (f *fakeDims) Upsert(_ context.Context, name dimension.Name) (int64, error) {
	f.upsertOrder = append(f.upsertOrder, name)
	if err := f.upsertErrs[name]; err != nil {
		return 0, err
	}
	return f.upsertRows[name], nil
}

func (f *fakeDims) TeamKeysByName(context.Context) (map[string]int64, error) {
	return f.teams, nil
}

func (f *fakeDims) PlayerKeysByName(context.Context) (map[string]int64, error) {
	return f.players, nil
}

func (f *fakeDims) RefereeKeysByName(context.Context) (map[string]int64, error) {
	return f.referees, nil
}

func (f *fakeDims) StadiumKeysByName(context.Context) (map[string]int64, error) {
	return f.stadiums, nil
}

func (f *fakeDims) SeasonKeysByName(context.Context) (map[string]int64, error) {
	return f.seasons, nil
}

func (f *fakeDims) DateKeys(context.Context) (map[string]int64, error) {
	return f.dates, nil
}

type fakeMappings struct {
	teamMappings  []mapping.TeamMapping
	matchMappings []mapping.MatchMapping
	teamIDs       map[int64]int64
	matchIDs      map[int64]int64
}

func (f *fakeMappings) UpsertTeamMappings(_ context.Context, items []mapping.TeamMapping) (int64, error) {
	f.teamMappings = append(f.teamMappings, items...)
	return int64(len(items)), nil
}

func (f *fakeMappings) UpsertMatchMappings(_ context.Context, items []mapping.MatchMapping) (int64, error) {
	f.matchMappings = append(f.matchMappings, items...)
	return int64(len(items)), nil
}

func (f *fakeMappings) TeamIDsByStatsBombID(context.Context) (map[int64]int64, error) {
	return f.teamIDs, nil
}

func (f *fakeMappings) MatchIDsByStatsBombID(context.Context) (map[int64]int64, error) {
	return f.matchIDs, nil
}

type fakeFacts struct {
	matches     []fact.MatchInsert
	playerStats []fact.PlayerStatInsert
	events      []fact.EventInsert
	matchKeys   []fact.MatchKey

	insertMatchesErr error
	insertStatsErr   error
	insertEventsErr  error
}

func (f *fakeFacts) InsertMatches(_ context.Context, items []fact.MatchInsert) (int64, error) {
	if f.insertMatchesErr != nil {
		return 0, f.insertMatchesErr
	}
	f.matches = append(f.matches, items...)
	return int64(len(items)), nil
}

func (f *fakeFacts) InsertPlayerStats(_ context.Context, items []fact.PlayerStatInsert) (int64, error) {
	if f.insertStatsErr != nil {
		return 0, f.insertStatsErr
	}
	f.playerStats = append(f.playerStats, items...)
	return int64(len(items)), nil
}

func (f *fakeFacts) InsertEvents(_ context.Context, items []fact.EventInsert) (int64, error) {
	if f.insertEventsErr != nil {
		return 0, f.insertEventsErr
	}
	f.events = append(f.events, items...)
	return int64(len(items)), nil
}

func (f *fakeFacts) ListMatchKeys(context.Context) ([]fact.MatchKey, error) {
	return f.matchKeys, nil
}

type fakeRunLog struct {
	mu        sync.Mutex
	entries   []etlrun.Entry
	appendErr error
}

func (f *fakeRunLog) Append(_ context.Context, entry etlrun.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRunLog) phases() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, entry := range f.entries {
		out = append(out, entry.PhaseStep+":"+entry.Status)
	}
	return out
}
