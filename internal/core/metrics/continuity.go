package metrics

import (
	"time"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// ContinuityIndex splits the table into runs wherever two consecutive
// messages are more than gap apart and returns the longest run's span.
func ContinuityIndex(t *chatlog.Table, gap time.Duration) time.Duration {
	if t.Len() == 0 {
		return 0
	}
	var longest time.Duration
	start := t.Records[0].Timestamp
	for i := 1; i < len(t.Records); i++ {
		prev, cur := t.Records[i-1].Timestamp, t.Records[i].Timestamp
		if cur.Sub(prev) > gap {
			longest = max(longest, prev.Sub(start))
			start = cur
		}
	}
	return max(longest, t.Records[len(t.Records)-1].Timestamp.Sub(start))
}

// ContinuitySummary reports ContinuityIndex as text and minutes.
func ContinuitySummary(t *chatlog.Table, gap time.Duration) models.Continuity {
	d := ContinuityIndex(t, gap)
	return models.Continuity{Duration: d.String(), Minutes: round(d.Minutes(), 1)}
}
