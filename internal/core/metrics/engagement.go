package metrics

import (
	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
)

// Engagement balance labels.
const (
	Balanced         = "balanced"
	Unbalanced       = "unbalanced"
	InsufficientData = "insufficient data"
)

// InitiationIndex credits the author of each calendar day's first message
// and returns each author's share of days as a percentage.
func InitiationIndex(t *chatlog.Table) map[string]float64 {
	starters := make(map[string]int)
	seen := make(map[string]bool)
	days := 0
	for _, r := range t.Records {
		d := r.Day()
		if seen[d] {
			continue
		}
		seen[d] = true
		starters[r.Author]++
		days++
	}

	out := make(map[string]float64, len(starters))
	for a, n := range starters {
		out[a] = round(float64(n)/float64(days)*100, 1)
	}
	return out
}

// ReplyTimes returns each author's mean reply delay in minutes, counting only
// adjacent pairs where the author changes. Authors who never reply are absent.
func ReplyTimes(t *chatlog.Table) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 1; i < len(t.Records); i++ {
		prev, cur := t.Records[i-1], t.Records[i]
		if cur.Author == prev.Author {
			continue
		}
		sums[cur.Author] += cur.Timestamp.Sub(prev.Timestamp).Minutes()
		counts[cur.Author]++
	}

	out := make(map[string]float64, len(sums))
	for a, s := range sums {
		out[a] = round(s/float64(counts[a]), 1)
	}
	return out
}

// EngagementBalance compares the least and most active authors' message
// counts. It needs at least two authors.
func EngagementBalance(t *chatlog.Table, threshold float64) string {
	counts := messageCounts(t)
	if len(counts) < 2 {
		return InsufficientData
	}
	lo, hi := -1, 0
	for _, n := range counts {
		if lo < 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if float64(lo)/float64(hi) > threshold {
		return Balanced
	}
	return Unbalanced
}

// InteractionGaps returns, per author, the longest silence in hours that
// preceded one of their messages.
func InteractionGaps(t *chatlog.Table) map[string]float64 {
	out := make(map[string]float64)
	for i := 1; i < len(t.Records); i++ {
		cur := t.Records[i]
		gap := cur.Timestamp.Sub(t.Records[i-1].Timestamp).Hours()
		if old, ok := out[cur.Author]; !ok || gap > old {
			out[cur.Author] = gap
		}
	}
	for a, g := range out {
		out[a] = round(g, 2)
	}
	return out
}

// LateNightActivity counts messages per author whose hour of day falls in
// [start, end]. Authors without late messages are absent.
func LateNightActivity(t *chatlog.Table, start, end int) map[string]int {
	out := make(map[string]int)
	for _, r := range t.Records {
		if inWindow(r.Timestamp.Hour(), start, end) {
			out[r.Author]++
		}
	}
	return out
}

func inWindow(hour, start, end int) bool {
	return hour >= start && hour <= end
}

func messageCounts(t *chatlog.Table) map[string]int {
	counts := make(map[string]int)
	for _, r := range t.Records {
		counts[r.Author]++
	}
	return counts
}
