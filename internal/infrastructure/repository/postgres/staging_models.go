package postgres

import (
	"time"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

var matchRowColumns = []string{
	"match_date", "season", "home_team", "away_team",
	"ft_home_goals", "ft_away_goals", "ft_result",
	"ht_home_goals", "ht_away_goals", "ht_result",
	"referee",
	"home_shots", "away_shots", "home_shots_ot", "away_shots_ot",
	"home_corners", "away_corners", "home_fouls", "away_fouls",
	"home_yellows", "away_yellows", "home_reds", "away_reds",
	"file_name", "status",
}

type matchRowModel struct {
	MatchDate   time.Time `db:"match_date"`
	Season      string    `db:"season"`
	HomeTeam    string    `db:"home_team"`
	AwayTeam    string    `db:"away_team"`
	FTHomeGoals int       `db:"ft_home_goals"`
	FTAwayGoals int       `db:"ft_away_goals"`
	FTResult    *string   `db:"ft_result"`
	HTHomeGoals int       `db:"ht_home_goals"`
	HTAwayGoals int       `db:"ht_away_goals"`
	HTResult    *string   `db:"ht_result"`
	Referee     *string   `db:"referee"`
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
	FileName    string    `db:"file_name"`
	Status      string    `db:"status"`
}

func newMatchRowModel(row staging.MatchRow) matchRowModel {
	return matchRowModel{
		MatchDate:   row.MatchDate,
		Season:      row.Season,
		HomeTeam:    row.HomeTeam,
		AwayTeam:    row.AwayTeam,
		FTHomeGoals: row.FTHomeGoals,
		FTAwayGoals: row.FTAwayGoals,
		FTResult:    nullableString(row.FTResult),
		HTHomeGoals: row.HTHomeGoals,
		HTAwayGoals: row.HTAwayGoals,
		HTResult:    nullableString(row.HTResult),
		Referee:     nullableString(row.Referee),
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
		FileName:    row.FileName,
		Status:      row.Status,
	}
}

func (m matchRowModel) toDomain() staging.MatchRow {
	return staging.MatchRow{
		MatchDate:   m.MatchDate,
		Season:      m.Season,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		FTHomeGoals: m.FTHomeGoals,
		FTAwayGoals: m.FTAwayGoals,
		FTResult:    stringValue(m.FTResult),
		HTHomeGoals: m.HTHomeGoals,
		HTAwayGoals: m.HTAwayGoals,
		HTResult:    stringValue(m.HTResult),
		Referee:     stringValue(m.Referee),
		HomeShots:   m.HomeShots,
		AwayShots:   m.AwayShots,
		HomeShotsOT: m.HomeShotsOT,
		AwayShotsOT: m.AwayShotsOT,
		HomeCorners: m.HomeCorners,
		AwayCorners: m.AwayCorners,
		HomeFouls:   m.HomeFouls,
		AwayFouls:   m.AwayFouls,
		HomeYellows: m.HomeYellows,
		AwayYellows: m.AwayYellows,
		HomeReds:    m.HomeReds,
		AwayReds:    m.AwayReds,
		FileName:    m.FileName,
		Status:      m.Status,
	}
}

var teamRowColumns = []string{
	"team_name", "short_name", "team_code", "city", "stadium",
	"season", "endpoint", "raw_data", "status",
}

type teamRowModel struct {
	TeamName  string  `db:"team_name"`
	ShortName *string `db:"short_name"`
	TeamCode  *string `db:"team_code"`
	City      *string `db:"city"`
	Stadium   *string `db:"stadium"`
	Season    string  `db:"season"`
	Endpoint  string  `db:"endpoint"`
	RawData   *string `db:"raw_data"`
	Status    string  `db:"status"`
}

func newTeamRowModel(row staging.TeamRow) teamRowModel {
	return teamRowModel{
		TeamName:  row.TeamName,
		ShortName: nullableString(row.ShortName),
		TeamCode:  nullableString(row.TeamCode),
		City:      nullableString(row.City),
		Stadium:   nullableString(row.Stadium),
		Season:    row.Season,
		Endpoint:  row.Endpoint,
		RawData:   nullableString(row.RawData),
		Status:    row.Status,
	}
}

func (m teamRowModel) toDomain() staging.TeamRow {
	return staging.TeamRow{
		TeamName:  m.TeamName,
		ShortName: stringValue(m.ShortName),
		TeamCode:  stringValue(m.TeamCode),
		City:      stringValue(m.City),
		Stadium:   stringValue(m.Stadium),
		Season:    m.Season,
		Endpoint:  m.Endpoint,
		RawData:   stringValue(m.RawData),
		Status:    m.Status,
	}
}

type playerRowModel struct {
	PlayerName  string     `db:"player_name"`
	BirthDate   *time.Time `db:"birth_date"`
	Nationality *string    `db:"nationality"`
	Position    *string    `db:"position"`
	TeamName    *string    `db:"team_name"`
	ExternalID  int64      `db:"external_id"`
	RawData     *string    `db:"raw_data"`
	Status      string     `db:"status"`
}

func newPlayerRowModel(row staging.PlayerRow) playerRowModel {
	return playerRowModel{
		PlayerName:  row.PlayerName,
		BirthDate:   nullableTime(row.BirthDate),
		Nationality: nullableString(row.Nationality),
		Position:    nullableString(row.Position),
		TeamName:    nullableString(row.TeamName),
		ExternalID:  row.ExternalID,
		RawData:     nullableString(row.RawData),
		Status:      row.Status,
	}
}

type refereeRowModel struct {
	RefereeName        string     `db:"referee_name"`
	DateOfBirth        *time.Time `db:"date_of_birth"`
	Nationality        *string    `db:"nationality"`
	PremierLeagueDebut *time.Time `db:"premier_league_debut"`
	RefStatus          *string    `db:"ref_status"`
	SheetName          string     `db:"sheet_name"`
	Status             string     `db:"status"`
}

func newRefereeRowModel(row staging.RefereeRow) refereeRowModel {
	return refereeRowModel{
		RefereeName:        row.RefereeName,
		DateOfBirth:        nullableTime(row.DateOfBirth),
		Nationality:        nullableString(row.Nationality),
		PremierLeagueDebut: nullableTime(row.PremierLeagueDebut),
		RefStatus:          nullableString(row.RefStatus),
		SheetName:          row.SheetName,
		Status:             row.Status,
	}
}

var playerStatRowColumns = []string{
	"player_name", "team_name", "season_name",
	"appearances", "goals", "assists", "minutes_played",
	"yellow_cards", "red_cards", "status",
}

type playerStatRowModel struct {
	PlayerName    string `db:"player_name"`
	TeamName      string `db:"team_name"`
	SeasonName    string `db:"season_name"`
	Appearances   int    `db:"appearances"`
	Goals         int    `db:"goals"`
	Assists       int    `db:"assists"`
	MinutesPlayed int    `db:"minutes_played"`
	YellowCards   int    `db:"yellow_cards"`
	RedCards      int    `db:"red_cards"`
	Status        string `db:"status"`
}

func newPlayerStatRowModel(row staging.PlayerStatRow) playerStatRowModel {
	return playerStatRowModel{
		PlayerName:    row.PlayerName,
		TeamName:      row.TeamName,
		SeasonName:    row.SeasonName,
		Appearances:   row.Appearances,
		Goals:         row.Goals,
		Assists:       row.Assists,
		MinutesPlayed: row.MinutesPlayed,
		YellowCards:   row.YellowCards,
		RedCards:      row.RedCards,
		Status:        row.Status,
	}
}

func (m playerStatRowModel) toDomain() staging.PlayerStatRow {
	return staging.PlayerStatRow{
		PlayerName:    m.PlayerName,
		TeamName:      m.TeamName,
		SeasonName:    m.SeasonName,
		Appearances:   m.Appearances,
		Goals:         m.Goals,
		Assists:       m.Assists,
		MinutesPlayed: m.MinutesPlayed,
		YellowCards:   m.YellowCards,
		RedCards:      m.RedCards,
		Status:        m.Status,
	}
}

var eventRowColumns = []string{
	"statsbomb_match_id", "source_event_id", "event_type", "player_name",
	"statsbomb_team_id", "team_name", "minute", "second", "statsbomb_period",
	"status",
}

type eventRowModel struct {
	StatsBombMatchID int64   `db:"statsbomb_match_id"`
	SourceEventID    string  `db:"source_event_id"`
	EventType        string  `db:"event_type"`
	PlayerName       *string `db:"player_name"`
	StatsBombTeamID  *int64  `db:"statsbomb_team_id"`
	TeamName         *string `db:"team_name"`
	Minute           int     `db:"minute"`
	Second           int     `db:"second"`
	StatsBombPeriod  int     `db:"statsbomb_period"`
	Status           string  `db:"status"`
}

func newEventRowModel(row staging.EventRow) eventRowModel {
	var teamID *int64
	if row.StatsBombTeamID != 0 {
		v := row.StatsBombTeamID
		teamID = &v
	}
	return eventRowModel{
		StatsBombMatchID: row.StatsBombMatchID,
		SourceEventID:    row.SourceEventID,
		EventType:        row.EventType,
		PlayerName:       nullableString(row.PlayerName),
		StatsBombTeamID:  teamID,
		TeamName:         nullableString(row.TeamName),
		Minute:           row.Minute,
		Second:           row.Second,
		StatsBombPeriod:  row.Period,
		Status:           row.Status,
	}
}

func (m eventRowModel) toDomain() staging.EventRow {
	var teamID int64
	if m.StatsBombTeamID != nil {
		teamID = *m.StatsBombTeamID
	}
	return staging.EventRow{
		StatsBombMatchID: m.StatsBombMatchID,
		SourceEventID:    m.SourceEventID,
		EventType:        m.EventType,
		PlayerName:       stringValue(m.PlayerName),
		StatsBombTeamID:  teamID,
		TeamName:         stringValue(m.TeamName),
		Minute:           m.Minute,
		Second:           m.Second,
		Period:           m.StatsBombPeriod,
		Status:           m.Status,
	}
}

type sbMatchRowModel struct {
	StatsBombMatchID int64     `db:"statsbomb_match_id"`
	MatchDate        time.Time `db:"match_date"`
	HomeTeam         string    `db:"home_team"`
	AwayTeam         string    `db:"away_team"`
	Status           string    `db:"status"`
}
