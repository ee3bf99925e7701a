// Package mapping holds the cross-source identity tables. A mapping row only
// exists when resolution succeeded; misses stay absent and are reported as
// warnings by the resolver.
package mapping

import "time"

type TeamMapping struct {
	StatsBombTeamID   int64
	TeamID            int64
	StatsBombTeamName string
}

type MatchMapping struct {
	StatsBombMatchID int64
	MatchID          int64
	MatchDate        time.Time
	HomeTeam         string
	AwayTeam         string
}
