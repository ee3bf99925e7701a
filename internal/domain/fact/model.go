// Package fact models the warehouse fact tables. Insert shapes carry already
// resolved surrogate keys; resolution from names to keys happens in the
// services, never in SQL joins against staged text.
package fact

import "time"

type MatchInsert struct {
	MatchDate   time.Time
	DateID      int64
	SeasonID    int64
	HomeTeamID  int64
	AwayTeamID  int64
	RefereeID   int64
	StadiumID   int64
	FTHomeGoals int
	FTAwayGoals int
	FTResult    string
	HTHomeGoals int
	HTAwayGoals int
	HTResult    string
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
}

type PlayerStatInsert struct {
	PlayerID      int64
	TeamID        int64
	SeasonID      int64
	Appearances   int
	Goals         int
	Assists       int
	MinutesPlayed int
	YellowCards   int
	RedCards      int
}

type EventInsert struct {
	MatchID       int64
	SourceEventID string
	EventType     string
	PlayerID      int64
	TeamID        int64
	Minute        int
	ExtraTime     int
	Period        int
	Second        int
}

// MatchKey is a fact_match row joined back to its team names, used by the
// match resolver to line fact rows up with StatsBomb fixtures.
type MatchKey struct {
	MatchID      int64
	MatchDate    time.Time
	HomeTeamName string
	AwayTeamName string
}
