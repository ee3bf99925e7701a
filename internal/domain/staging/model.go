// Package staging models the raw landing tables. Extractors write rows with
// StatusLoaded; the cleaning phase rewrites names in place; the cleanup phase
// truncates everything here once facts have landed.
package staging

import "time"

const (
	StatusLoaded  = "LOADED"
	StatusCleaned = "CLEANED"
)

// MatchRow is one fixture from an E0 season CSV file.
type MatchRow struct {
	MatchDate   time.Time
	Season      string
	HomeTeam    string
	AwayTeam    string
	FTHomeGoals int
	FTAwayGoals int
	FTResult    string
	HTHomeGoals int
	HTAwayGoals int
	HTResult    string
	Referee     string
	HomeShots   int
	AwayShots   int
	HomeShotsOT int
	AwayShotsOT int
	HomeCorners int
	AwayCorners int
	HomeFouls   int
	AwayFouls   int
	HomeYellows int
	AwayYellows int
	HomeReds    int
	AwayReds    int
	FileName    string
	Status      string
}

// TeamRow is one club from a football-data teams payload.
type TeamRow struct {
	TeamName  string
	ShortName string
	TeamCode  string
	City      string
	Stadium   string
	Season    string
	Endpoint  string
	RawData   string
	Status    string
}

// PlayerRow is one squad member lifted out of a staged team payload.
type PlayerRow struct {
	PlayerName  string
	BirthDate   *time.Time
	Nationality string
	Position    string
	TeamName    string
	ExternalID  int64
	RawData     string
	Status      string
}

// RefereeRow is one row from the referee Excel sheet.
type RefereeRow struct {
	RefereeName        string
	DateOfBirth        *time.Time
	Nationality        string
	PremierLeagueDebut *time.Time
	RefStatus          string
	SheetName          string
	Status             string
}

// PlayerStatRow is one season aggregate from the mock fbref feed.
type PlayerStatRow struct {
	PlayerName    string
	TeamName      string
	SeasonName    string
	Appearances   int
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
	Status        string
}

// EventRow is one StatsBomb match event. Minute and period are kept exactly as
// the source file has them; normalization happens at fact-load time.
type EventRow struct {
	StatsBombMatchID int64
	SourceEventID    string
	EventType        string
	PlayerName       string
	StatsBombTeamID  int64
	TeamName         string
	Minute           int
	Second           int
	Period           int
	Status           string
}

// SBMatchRow is StatsBomb's own record of a fixture, used by the match
// resolver to tie statsbomb_match_id to a fact_match row.
type SBMatchRow struct {
	StatsBombMatchID int64
	MatchDate        time.Time
	HomeTeam         string
	AwayTeam         string
	Status           string
}

// EventTeam is a distinct (statsbomb team id, name) pair seen in staged events.
type EventTeam struct {
	StatsBombTeamID int64
	TeamName        string
}
