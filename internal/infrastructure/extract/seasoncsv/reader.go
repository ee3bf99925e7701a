// Package seasoncsv parses football-data.co.uk E0 season files into match
// staging rows. The files are plain CSV with a header row; column presence
// varies slightly between seasons, so missing stat columns default to zero
// rather than failing the file.
package seasoncsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

var dateLayouts = []string{"02/01/2006", "02/01/06", "2006-01-02"}

var seasonFilePattern = regexp.MustCompile(`(\d{4})(\d{4})`)

// SeasonFromFileName derives "2023/2024" from names like
// "E0Season_20232024.csv". Falls back to the bare file name when the pattern
// is absent.
func SeasonFromFileName(fileName string) string {
	if m := seasonFilePattern.FindStringSubmatch(fileName); m != nil {
		return m[1] + "/" + m[2]
	}
	return strings.TrimSuffix(fileName, ".csv")
}

// Parse reads one E0 file. Rows with an unparseable date or a missing team
// name are skipped; the row error count comes back alongside the rows so the
// caller can decide whether the file still counts as staged.
func Parse(r io.Reader, fileName string) ([]staging.MatchRow, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header %s: %w", fileName, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "hometeam", "awayteam"} {
		if _, ok := index[required]; !ok {
			return nil, 0, fmt.Errorf("csv %s is missing required column %q", fileName, required)
		}
	}

	season := SeasonFromFileName(fileName)

	var rows []staging.MatchRow
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read csv record %s: %w", fileName, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		matchDate, err := parseDate(field("date"))
		if err != nil {
			skipped++
			continue
		}
		homeTeam := field("hometeam")
		awayTeam := field("awayteam")
		if homeTeam == "" || awayTeam == "" {
			skipped++
			continue
		}

		rows = append(rows, staging.MatchRow{
			MatchDate:   matchDate,
			Season:      season,
			HomeTeam:    homeTeam,
			AwayTeam:    awayTeam,
			FTHomeGoals: intField(field("fthg")),
			FTAwayGoals: intField(field("ftag")),
			FTResult:    field("ftr"),
			HTHomeGoals: intField(field("hthg")),
			HTAwayGoals: intField(field("htag")),
			HTResult:    field("htr"),
			Referee:     field("referee"),
			HomeShots:   intField(field("hs")),
			AwayShots:   intField(field("as")),
			HomeShotsOT: intField(field("hst")),
			AwayShotsOT: intField(field("ast")),
			HomeCorners: intField(field("hc")),
			AwayCorners: intField(field("ac")),
			HomeFouls:   intField(field("hf")),
			AwayFouls:   intField(field("af")),
			HomeYellows: intField(field("hy")),
			AwayYellows: intField(field("ay")),
			HomeReds:    intField(field("hr")),
			AwayReds:    intField(field("ar")),
			FileName:    fileName,
			Status:      staging.StatusLoaded,
		})
	}

	return rows, skipped, nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}

func intField(v string) int {
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
