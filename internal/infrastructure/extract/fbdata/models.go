package fbdata

import (
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

type TeamsResponse struct {
	Season Season `json:"season"`
	Teams  []Team `json:"teams" validate:"required,min=1,dive"`
}

type Season struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Team struct {
	ID        int64        `json:"id" validate:"required"`
	Name      string       `json:"name" validate:"required"`
	ShortName string       `json:"shortName"`
	TLA       string       `json:"tla"`
	Address   string       `json:"address"`
	Venue     string       `json:"venue"`
	Squad     []SquadEntry `json:"squad"`
}

type SquadEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name" validate:"required"`
	Position    string `json:"position"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
}

// SeasonName derives "2023/2024" from the payload's season dates.
func (r TeamsResponse) SeasonName() string {
	start := yearOf(r.Season.StartDate)
	end := yearOf(r.Season.EndDate)
	if start == "" || end == "" {
		return ""
	}
	return start + "/" + end
}

func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// StagingRows flattens the payload into team and player staging rows. The
// endpoint string lands in the manifest and on every team row for lineage.
func (r TeamsResponse) StagingRows(endpoint string) ([]staging.TeamRow, []staging.PlayerRow) {
	seasonName := r.SeasonName()

	teamRows := make([]staging.TeamRow, 0, len(r.Teams))
	var playerRows []staging.PlayerRow
	for _, team := range r.Teams {
		raw, err := sonic.MarshalString(team)
		if err != nil {
			raw = ""
		}

		teamRows = append(teamRows, staging.TeamRow{
			TeamName:  team.Name,
			ShortName: team.ShortName,
			TeamCode:  team.TLA,
			City:      cityFromAddress(team.Address),
			Stadium:   team.Venue,
			Season:    seasonName,
			Endpoint:  endpoint,
			RawData:   raw,
			Status:    staging.StatusLoaded,
		})

		for _, member := range team.Squad {
			playerRaw, err := sonic.MarshalString(member)
			if err != nil {
				playerRaw = ""
			}
			playerRows = append(playerRows, staging.PlayerRow{
				PlayerName:  member.Name,
				BirthDate:   parseBirthDate(member.DateOfBirth),
				Nationality: member.Nationality,
				Position:    member.Position,
				TeamName:    team.Name,
				ExternalID:  member.ID,
				RawData:     playerRaw,
				Status:      staging.StatusLoaded,
			})
		}
	}

	return teamRows, playerRows
}

// cityFromAddress pulls the city token out of a football-data address line,
// e.g. "75 Drayton Park London N5 1BU" is too loose to parse reliably, so we
// only take the second-to-last comma-separated part when the address is
// comma-structured and give up otherwise.
func cityFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-2])
}

func parseBirthDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}
