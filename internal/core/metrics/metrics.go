// Package metrics derives the descriptive statistics and vibe scores of a
// chat from its record table. Every metric is a pure function over a
// read-only Frame; none of them mutates the table or depends on another
// metric having run first.
package metrics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/core/emoji"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// ErrMetricFault wraps an unexpected failure inside a metric computation.
var ErrMetricFault = errors.New("metric computation failed")

// Options tunes thresholds used by the metric computers.
type Options struct {
	Gap              time.Duration // continuity break
	TopKeywords      int
	BalanceThreshold float64 // min/max message ratio above which a chat is balanced
	ConciseWords     float64 // mean words below which a style is concise
	ElaborativeWords float64 // mean words above which a style is elaborative
	QuestionRate     float64 // '?' per message above which an author is inquisitive
	EmojiRate        float64 // emoji per message above which an author is expressive
	FastReplyMinutes float64
	LateNightStart   int // first hour of the late-night window, inclusive
	LateNightEnd     int // last hour of the late-night window, inclusive
	Emoji            *emoji.Table
}

// DefaultOptions returns the thresholds the dashboard was calibrated with.
func DefaultOptions() Options {
	return Options{
		Gap:              30 * time.Minute,
		TopKeywords:      10,
		BalanceThreshold: 0.8,
		ConciseWords:     5,
		ElaborativeWords: 20,
		QuestionRate:     0.3,
		EmojiRate:        0.5,
		FastReplyMinutes: 30,
		LateNightStart:   0,
		LateNightEnd:     4,
		Emoji:            emoji.Default,
	}
}

// Frame pairs a record table with per-record polarities computed once
// up front. Polarity[i] belongs to Table.Records[i].
type Frame struct {
	Table    *chatlog.Table
	Polarity []float64
}

// NewFrame validates that polarities line up with the table.
func NewFrame(t *chatlog.Table, polarity []float64) (*Frame, error) {
	if t == nil || t.Len() == 0 {
		return nil, chatlog.ErrNoData
	}
	if len(polarity) != t.Len() {
		return nil, fmt.Errorf("polarity count %d does not match %d records", len(polarity), t.Len())
	}
	return &Frame{Table: t, Polarity: polarity}, nil
}

// Compute runs every metric over the frame. A panic inside any metric is
// turned into an ErrMetricFault naming that metric.
func Compute(f *Frame, opts Options) (*models.Bundle, error) {
	if opts.Emoji == nil {
		opts.Emoji = emoji.Default
	}
	t := f.Table
	b := &models.Bundle{
		TotalMessages: t.Len(),
		Authors:       t.Authors(),
	}

	steps := []struct {
		name string
		run  func()
	}{
		{"initiation_index", func() { b.InitiationIndex = InitiationIndex(t) }},
		{"reply_times", func() { b.ReplyTimes = ReplyTimes(t) }},
		{"engagement_balance", func() { b.EngagementBalance = EngagementBalance(t, opts.BalanceThreshold) }},
		{"sentiment_timeline", func() { b.SentimentTimeline = SentimentTimeline(f) }},
		{"sentiment_variability", func() { b.SentimentVariability = SentimentVariability(f.Polarity) }},
		{"continuity_index", func() { b.ContinuityIndex = ContinuitySummary(t, opts.Gap) }},
		{"late_activity", func() { b.LateActivity = LateNightActivity(t, opts.LateNightStart, opts.LateNightEnd) }},
		{"emoji_usage", func() { b.EmojiUsage = EmojiUsage(t, opts.Emoji) }},
		{"communication_style", func() { b.CommunicationStyle = CommunicationStyle(t, opts) }},
		{"interaction_gaps", func() { b.InteractionGaps = InteractionGaps(t) }},
		{"keyword_themes", func() { b.KeywordThemes = KeywordThemes(t, opts.TopKeywords) }},
		{"harmony_score", func() {
			b.HarmonyScore = HarmonyScore(b.EngagementBalance, b.ReplyTimes, MeanPolarity(f.Polarity), opts.FastReplyMinutes)
		}},
		{"overview", func() { b.Overview = Summarize(f, opts) }},
	}
	for _, s := range steps {
		if err := guard(s.name, s.run); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func guard(name string, run func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrMetricFault, name, r)
		}
	}()
	run()
	return nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
