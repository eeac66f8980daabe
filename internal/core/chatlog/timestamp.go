package chatlog

import (
	"strings"
	"time"
)

// Dates are read day-first (D/M/Y). Exports from month-first locales are
// ambiguous for the first twelve days of every month and will mis-parse.
var (
	dateLayoutLongYear  = "2/1/2006"
	dateLayoutShortYear = "2/1/06"
)

// 24-hour clock layouts, tried in order.
var clockLayouts = []string{"15:04", "15:04:05"}

// 12-hour clock layouts, used only when an am/pm marker is present.
var meridiemLayouts = []string{"3:04 PM", "3:04:05 PM"}

// NormalizeTimestamp combines a D/M/Y date and a clock time into one instant.
// Timestamps carry no zone in exports; they are interpreted as UTC wall time.
// It reports false when no supported layout fits.
func NormalizeTimestamp(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock, meridiem := splitMeridiem(strings.TrimSpace(clock))

	dateLayout := dateLayoutShortYear
	if i := strings.LastIndexByte(date, '/'); i >= 0 && len(date)-i-1 == 4 {
		dateLayout = dateLayoutLongYear
	}

	layouts := clockLayouts
	if meridiem != "" {
		layouts = meridiemLayouts
		clock = clock + " " + meridiem
	}

	for _, l := range layouts {
		ts, err := time.Parse(dateLayout+" "+l, date+" "+clock)
		if err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// splitMeridiem separates a trailing am/pm marker (any case, optional dots)
// from the clock digits and returns it upper-cased without dots.
func splitMeridiem(clock string) (string, string) {
	s := strings.ToUpper(strings.ReplaceAll(clock, ".", ""))
	for _, m := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, m) {
			return strings.TrimSpace(strings.TrimSuffix(s, m)), m
		}
	}
	return clock, ""
}
