// Package event holds the match-event minute rules applied at fact-load time.
package event

// MaxLoadableMinute bounds the raw source minute accepted into
// fact_match_events.
const MaxLoadableMinute = 120

// DerivedMinute maps a raw StatsBomb (period, minute) pair onto the stored
// minute-of-play. Second-half clocks keep counting from 45, so minutes past
// 45 in period 2 are shifted back; extra-time periods pass the raw minute
// through; everything else, first half included, yields 0.
//
// Period 1 is deliberately not bounded to 45; the rule is preserved exactly
// as it behaves upstream.
func DerivedMinute(period, minute int) int {
	switch {
	case period == 2 && minute > 45:
		return minute - 45
	case period >= 3:
		return minute
	default:
		return 0
	}
}

// Loadable reports whether an event's raw minute is inside the accepted
// [0, MaxLoadableMinute] window. Rows outside it are silently excluded before
// insert. The bound is on the raw minute, not the derived one: the derived
// minute is never larger, so the bound covers both.
func Loadable(minute int) bool {
	return minute >= 0 && minute <= MaxLoadableMinute
}
