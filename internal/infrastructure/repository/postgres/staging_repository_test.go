package postgres

import (
	"strings"
	"testing"
)

func TestCleanupScopeOnlyCoversStagingTables(t *testing.T) {
	if len(cleanupTables) != 7 {
		t.Fatalf("expected 7 staging tables in cleanup scope, got %d", len(cleanupTables))
	}
	for _, table := range cleanupTables {
		if !strings.HasPrefix(table, "stg_") {
			t.Fatalf("cleanup must never truncate %s", table)
		}
	}
}

func TestManifestTablesCoverEverySource(t *testing.T) {
	seen := make(map[string]bool)
	for source, table := range manifestTables {
		if !strings.HasPrefix(table, "etl_") || !strings.HasSuffix(table, "_manifest") {
			t.Fatalf("unexpected manifest table %s for source %s", table, source)
		}
		if seen[table] {
			t.Fatalf("manifest table %s mapped twice", table)
		}
		seen[table] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 manifest ledgers, got %d", len(seen))
	}
}
