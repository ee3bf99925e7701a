// Package refsheet extracts referee master data from the curated Excel
// workbook. One sheet, header row first, one referee per row.
package refsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", "1/2/06 15:04", "Jan 2, 2006"}

// headerAliases maps recognized header spellings to canonical field names.
var headerAliases = map[string]string{
	"referee":              "name",
	"referee name":         "name",
	"name":                 "name",
	"date of birth":        "dob",
	"dob":                  "dob",
	"nationality":          "nationality",
	"premier league debut": "debut",
	"pl debut":             "debut",
	"debut":                "debut",
	"status":               "status",
}

// ReadFile loads the referee sheet from the workbook at path. Rows without a
// referee name are counted as skipped.
func ReadFile(path, sheet string) ([]staging.RefereeRow, int, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		_ = book.Close()
	}()

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return parseRows(rows, sheet)
}

func parseRows(rows [][]string, sheet string) ([]staging.RefereeRow, int, error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet %q is empty", sheet)
	}

	index := make(map[string]int, len(rows[0]))
	for i, cell := range rows[0] {
		if field, ok := headerAliases[strings.ToLower(strings.TrimSpace(cell))]; ok {
			if _, exists := index[field]; !exists {
				index[field] = i
			}
		}
	}
	if _, ok := index["name"]; !ok {
		return nil, 0, fmt.Errorf("sheet %q has no referee name column", sheet)
	}

	var out []staging.RefereeRow
	skipped := 0
	for _, row := range rows[1:] {
		cell := func(field string) string {
			i, ok := index[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name := cell("name")
		if name == "" {
			skipped++
			continue
		}

		out = append(out, staging.RefereeRow{
			RefereeName:        name,
			DateOfBirth:        parseDate(cell("dob")),
			Nationality:        cell("nationality"),
			PremierLeagueDebut: parseDate(cell("debut")),
			RefStatus:          cell("status"),
			SheetName:          sheet,
			Status:             staging.StatusLoaded,
		})
	}

	return out, skipped, nil
}

func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
