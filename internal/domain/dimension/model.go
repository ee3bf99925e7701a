// Package dimension defines the warehouse dimensions and the sentinel keys
// every fact load depends on.
package dimension

const (
	// SentinelKey is the surrogate key of the UNKNOWN row present in every
	// dimension.
	SentinelKey int64 = -1
	// UnknownPlayerKey is the extra dim_player sentinel used when an event or
	// stat names a player the dimension has never seen.
	UnknownPlayerKey int64 = 6808
)

type Name string

const (
	Player  Name = "dim_player"
	Team    Name = "dim_team"
	Stadium Name = "dim_stadium"
	Referee Name = "dim_referee"
	Season  Name = "dim_season"
	Date    Name = "dim_date"
)

// All lists the dimensions in upsert order. Order is cosmetic; each upsert is
// independent.
var All = []Name{Player, Team, Stadium, Referee, Season, Date}

const (
	UpsertSuccess = "success"
	UpsertFailed  = "failed"
)

// UpsertResult is the outcome of one dimension's upsert inside a RunAll pass.
type UpsertResult struct {
	Dimension    Name
	Status       string
	RowsAffected int64
	Message      string
}

type Report struct {
	Results []UpsertResult
}

func (r *Report) Add(result UpsertResult) {
	r.Results = append(r.Results, result)
}

func (r *Report) FailedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == UpsertFailed {
			n++
		}
	}
	return n
}
