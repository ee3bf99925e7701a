// Package normalize holds the name-matching policy used to resolve team and
// player names across sources. The policy is deliberately bounded: trim,
// casefold, diacritic fold, punctuation strip, a fixed club-suffix list and a
// fixed alias table. Nothing here does similarity scoring.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var diacriticFolder = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// clubSuffixes are stripped only from the end of a team name.
var clubSuffixes = []string{"fc", "afc"}

// teamAliases maps normalized short forms (mostly from the E0 CSV files) to
// the normalized canonical club name used in dim_team.
var teamAliases = map[string]string{
	// Bournemouth is the one club whose long form leads with the suffix, so
	// trailing-only stripping never reaches it.
	"afc bournemouth": "bournemouth",

	"man united":    "manchester united",
	"man utd":       "manchester united",
	"man city":      "manchester city",
	"spurs":         "tottenham hotspur",
	"tottenham":     "tottenham hotspur",
	"nottm forest":  "nottingham forest",
	"wolves":        "wolverhampton wanderers",
	"newcastle":     "newcastle united",
	"west ham":      "west ham united",
	"brighton":      "brighton and hove albion",
	"sheffield utd": "sheffield united",
	"luton":         "luton town",
	"leeds":         "leeds united",
	"leicester":     "leicester city",
	"west brom":     "west bromwich albion",
}

// TeamKey normalizes a team name into its comparison key. Equal keys mean the
// two names refer to the same club.
func TeamKey(name string) string {
	key := basicKey(name)
	key = stripClubSuffix(key)
	if canonical, ok := teamAliases[key]; ok {
		return canonical
	}
	return key
}

// PlayerKey normalizes a player name into its comparison key. No alias table;
// player names only get the textual folding.
func PlayerKey(name string) string {
	return basicKey(name)
}

func basicKey(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if folded, _, err := transform.String(diacriticFolder, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case r == '\'' || r == '’':
			// "Nott'm Forest" folds to "nottm forest", not "nott m forest".
		case r == '&':
			if !lastSpace {
				b.WriteByte(' ')
			}
			b.WriteString("and")
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func stripClubSuffix(key string) string {
	for _, suffix := range clubSuffixes {
		trimmed := strings.TrimSuffix(key, " "+suffix)
		if trimmed != key {
			return trimmed
		}
	}
	return key
}
