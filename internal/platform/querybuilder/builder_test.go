package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := Select("team_id", "team_name").
		From("dim_team").
		Where(Eq("team_name", "Arsenal"), NotEmpty("team_code")).
		OrderBy("team_id").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT team_id, team_name FROM dim_team" +
		" WHERE team_name = $1 AND team_code IS NOT NULL AND TRIM(team_code) <> ''" +
		" ORDER BY team_id LIMIT 5"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %q\nwant %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"Arsenal"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestSelectDistinctGroupBy(t *testing.T) {
	sql, _, err := Select("team_name", "COUNT(*)").
		Distinct().
		From("stg_match_raw").
		GroupBy("team_name").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT DISTINCT team_name, COUNT(*) FROM stg_match_raw GROUP BY team_name"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
}

func TestSelectRequiresTable(t *testing.T) {
	if _, _, err := Select("x").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInCondEmptyNeverMatches(t *testing.T) {
	sql, args, err := Select("id").From("etl_log").Where(In("status", nil)).ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "SELECT id FROM etl_log WHERE 1=0" {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestInsertWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("dim_season").
		Columns("season_id", "season_name").
		Values(int64(-1), "UNKNOWN").
		Suffix("ON CONFLICT (season_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO dim_season (season_id, season_name) VALUES ($1, $2)" +
		" ON CONFLICT (season_id) DO NOTHING"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %v", args)
	}
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("dim_team").
		Columns("a", "b").
		Values(1).
		ToSQL()
	if err == nil {
		t.Fatalf("expected arity error")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		Name  string `db:"team_name"`
		Code  string `db:"team_code"`
		NoTag string
		Skip  string `db:"-"`
	}

	sql, args, err := InsertModel("dim_team", row{Name: "Chelsea", Code: "CHE"},
		"ON CONFLICT (team_name) DO UPDATE SET team_code = COALESCE(EXCLUDED.team_code, dim_team.team_code)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO dim_team (team_name, team_code) VALUES ($1, $2)" +
		" ON CONFLICT (team_name) DO UPDATE SET team_code = COALESCE(EXCLUDED.team_code, dim_team.team_code)"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"Chelsea", "CHE"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID   int64  `db:"statsbomb_team_id"`
		Name string `db:"statsbomb_team_name"`
	}

	sql, args, err := InsertModels("dim_team_mapping", []row{
		{ID: 746, Name: "Manchester City"},
		{ID: 38, Name: "Arsenal"},
	}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "INSERT INTO dim_team_mapping (statsbomb_team_id, statsbomb_team_name)" +
		" VALUES ($1, $2), ($3, $4)"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %v", args)
	}
}

func TestUpdateSetExpr(t *testing.T) {
	sql, args, err := Update("stg_player_raw").
		SetExpr("player_name", "INITCAP(TRIM(player_name))").
		Set("status", "CLEANED").
		Where(NotEmpty("player_name"), IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "UPDATE stg_player_raw SET player_name = INITCAP(TRIM(player_name)), status = $1" +
		" WHERE player_name IS NOT NULL AND TRIM(player_name) <> '' AND deleted_at IS NULL"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"CLEANED"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}

func TestExprPlaceholderRewrite(t *testing.T) {
	sql, args, err := Select("id").
		From("etl_file_manifest").
		Where(Eq("source_key", "E0_2023.csv"), Expr("load_end_time > ?", "2024-01-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "SELECT id FROM etl_file_manifest WHERE source_key = $1 AND load_end_time > $2"
	if sql != want {
		t.Fatalf("sql mismatch: %q", sql)
	}
	if !reflect.DeepEqual(args, []any{"E0_2023.csv", "2024-01-01"}) {
		t.Fatalf("args mismatch: %v", args)
	}
}
