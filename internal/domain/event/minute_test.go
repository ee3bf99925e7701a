package event

import "testing"

func TestDerivedMinute(t *testing.T) {
	cases := []struct {
		period, minute, want int
	}{
		{2, 52, 7},
		{2, 46, 1},
		{2, 45, 0},  // shift applies strictly above 45
		{1, 30, 0},  // first half always 0
		{1, 90, 0},  // period 1 intentionally unbounded passthrough-to-zero
		{3, 95, 95}, // extra time passes through
		{4, 118, 118},
		{0, 10, 0},
	}

	for _, tc := range cases {
		if got := DerivedMinute(tc.period, tc.minute); got != tc.want {
			t.Fatalf("DerivedMinute(%d, %d) = %d, want %d", tc.period, tc.minute, got, tc.want)
		}
	}
}

func TestLoadable(t *testing.T) {
	if !Loadable(0) {
		t.Fatalf("minute 0 must load")
	}
	if !Loadable(120) {
		t.Fatalf("minute 120 must load")
	}
	if Loadable(121) {
		t.Fatalf("minute 121 must not load")
	}
	if Loadable(-1) {
		t.Fatalf("negative minute must not load")
	}
	// The bound is on the raw minute: a period-2 event at raw minute 150 is
	// excluded even though its derived minute (105) is inside the window.
	if Loadable(150) {
		t.Fatalf("minute 150 must not load")
	}
}
