package normalize

import "testing"

func TestTeamKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"trims and casefolds", "  Arsenal  ", "arsenal"},
		{"strips fc suffix", "Liverpool FC", "liverpool"},
		{"strips afc suffix", "Bournemouth AFC", "bournemouth"},
		{"leading afc via alias", "AFC Bournemouth", "bournemouth"},
		{"suffix only at end", "FC United", "fc united"},
		{"csv short form", "Man United", "manchester united"},
		{"alias after suffix strip", "Man City FC", "manchester city"},
		{"apostrophe folded", "Nott'm Forest", "nottingham forest"},
		{"ampersand expanded", "Brighton & Hove Albion", "brighton and hove albion"},
		{"diacritics folded", "Atlético", "atletico"},
		{"punctuation collapsed", "West  Ham   United", "west ham united"},
		{"empty", "   ", ""},
	}

	for _, tc := range cases {
		if got := TeamKey(tc.in); got != tc.want {
			t.Fatalf("%s: TeamKey(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestTeamKeyCrossSourceAgreement(t *testing.T) {
	// The same club as it appears in the E0 CSV, the football-data API and
	// the StatsBomb event files must land on one key.
	forms := []string{"Wolves", "Wolverhampton Wanderers FC", "Wolverhampton Wanderers"}
	want := TeamKey(forms[0])
	for _, f := range forms[1:] {
		if got := TeamKey(f); got != want {
			t.Fatalf("TeamKey(%q) = %q, want %q", f, got, want)
		}
	}
}

func TestPlayerKey(t *testing.T) {
	if got := PlayerKey("  Bruno  Fernandes "); got != "bruno fernandes" {
		t.Fatalf("PlayerKey = %q", got)
	}
	if got := PlayerKey("Raúl Jiménez"); got != "raul jimenez" {
		t.Fatalf("PlayerKey = %q", got)
	}
	// No alias table and no suffix stripping for players.
	if got := PlayerKey("Marc FC"); got != "marc fc" {
		t.Fatalf("PlayerKey = %q", got)
	}
}
