package postgres

import (
	"regexp"
	"strings"
	"testing"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
)

func TestEveryDimensionHasUpsertStatements(t *testing.T) {
	for _, name := range dimension.All {
		statements, ok := upsertStatements[name]
		if !ok || len(statements) == 0 {
			t.Fatalf("dimension %s has no upsert statements", name)
		}
		for _, stmt := range statements {
			if !strings.Contains(stmt, "ON CONFLICT") {
				t.Fatalf("dimension %s upsert is not conflict-safe:\n%s", name, stmt)
			}
		}
	}
	if len(upsertStatements) != len(dimension.All) {
		t.Fatalf("upsert statements cover %d dimensions, want %d",
			len(upsertStatements), len(dimension.All))
	}
}

func TestSentinelStatementsCoverEveryDimensionTable(t *testing.T) {
	tables := []string{"dim_player", "dim_team", "dim_stadium", "dim_referee", "dim_season", "dim_date"}

	unknown := make(map[string]bool)
	knownMissing := false
	for _, stmt := range sentinelStatements {
		if !strings.Contains(stmt, "DO NOTHING") {
			t.Fatalf("sentinel insert must be idempotent:\n%s", stmt)
		}
		for _, table := range tables {
			if !strings.Contains(stmt, "INSERT INTO "+table+" ") {
				continue
			}
			if strings.Contains(stmt, "(-1,") {
				unknown[table] = true
			}
			if table == "dim_player" && strings.Contains(stmt, "6808") {
				if !strings.Contains(stmt, "'UNKNOWN_MISSING'") {
					t.Fatalf("known-missing player sentinel has wrong business key:\n%s", stmt)
				}
				knownMissing = true
			}
		}
	}

	for _, table := range tables {
		if !unknown[table] {
			t.Fatalf("no UNKNOWN sentinel insert for %s", table)
		}
	}
	if !knownMissing {
		t.Fatal("no known-missing sentinel insert for dim_player")
	}
}

func TestUpsertSetClausesNeverClobberWithNulls(t *testing.T) {
	// Any DO UPDATE assignment that reads the incoming row must go through
	// COALESCE so a NULL from one source cannot erase a value another source
	// already loaded.
	assignment := regexp.MustCompile(`(?m)^\s*\w+\s*=\s*(.+?),?\s*$`)

	for name, statements := range upsertStatements {
		for _, stmt := range statements {
			idx := strings.Index(stmt, "DO UPDATE SET")
			if idx < 0 {
				continue
			}
			for _, m := range assignment.FindAllStringSubmatch(stmt[idx:], -1) {
				rhs := m[1]
				if strings.Contains(rhs, "EXCLUDED.") && !strings.HasPrefix(rhs, "COALESCE(EXCLUDED.") {
					t.Fatalf("dimension %s assignment clobbers without COALESCE: %s", name, strings.TrimSpace(m[0]))
				}
			}
		}
	}
}
