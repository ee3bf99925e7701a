package refsheet

import "testing"

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"Referee", "Date of Birth", "Nationality", "PL Debut", "Status"},
		{"Michael Oliver", "1985-02-20", "England", "2010-08-21", "Active"},
		{"Anthony Taylor", "1978-10-20", "England", "", "Active"},
		{"", "", "", "", ""},
	}

	out, skipped, err := parseRows(rows, "Referees")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", skipped)
	}

	oliver := out[0]
	if oliver.RefereeName != "Michael Oliver" {
		t.Fatalf("name = %q", oliver.RefereeName)
	}
	if oliver.DateOfBirth == nil || oliver.DateOfBirth.Format("2006-01-02") != "1985-02-20" {
		t.Fatalf("dob = %v", oliver.DateOfBirth)
	}
	if oliver.PremierLeagueDebut == nil {
		t.Fatalf("debut missing")
	}
	if oliver.SheetName != "Referees" {
		t.Fatalf("sheet = %q", oliver.SheetName)
	}

	if out[1].PremierLeagueDebut != nil {
		t.Fatalf("empty debut should stay nil")
	}
}

func TestParseRowsHeaderAliases(t *testing.T) {
	rows := [][]string{
		{"Name", "DOB", "Nationality", "Debut", "Status"},
		{"Simon Hooper", "07/07/1982", "England", "2011-09-17", "Active"},
	}

	out, _, err := parseRows(rows, "Sheet1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].DateOfBirth == nil || out[0].DateOfBirth.Format("2006-01-02") != "1982-07-07" {
		t.Fatalf("dob = %v", out[0].DateOfBirth)
	}
}

func TestParseRowsMissingNameColumn(t *testing.T) {
	rows := [][]string{{"Nationality"}, {"England"}}

	if _, _, err := parseRows(rows, "Sheet1"); err == nil {
		t.Fatalf("expected error for missing name column")
	}
}
