package metrics

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

func TestSummarize(t *testing.T) {
	tbl := table(t,
		msg{"A", -9*time.Hour - 30*time.Minute, "lol why though 😂"},
		msg{"B", -9*time.Hour - 20*time.Minute, "image attached"},
		msg{"A", -7 * time.Hour, "what if?"},
		msg{"B", 26 * time.Hour, "haha ok"},
	)
	got := Summarize(frame(t, tbl), DefaultOptions())

	want := models.Overview{
		TotalWords:            10,
		TotalEmojis:           1,
		SpanDays:              1,
		ActiveDays:            2,
		AvgMessagesPerDay:     2,
		MostActiveDay:         "2024-01-01",
		MostActiveHour:        0,
		MaxDailyMessages:      3,
		LongestMessageLength:  16,
		ShortestMessageLength: 7,
		GhostingIndex:         50,
		LateNightPercent:      75,
		AvgReplyMinutes:       710,
		OneSidedPercent:       50,
		TypingEnergy:          2,
		Dryness:               11,
		Attachments:           1,
		Questions:             1,
		Laughs:                2,
		Overthinking:          2,
		DeluluScore:           2,
		RelationshipVibe:      VibeSituationship,
		EmojiBreakdown:        map[string]int{"😂": 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Summarize() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestSummarize_InLove(t *testing.T) {
	var msgs []msg
	for i := 0; i < 50; i++ {
		author := "A"
		if i%2 == 1 {
			author = "B"
		}
		msgs = append(msgs, msg{author, time.Duration(i) * time.Minute, "🥰"})
	}
	tbl := table(t, msgs...)
	pol := make([]float64, tbl.Len())
	for i := range pol {
		pol[i] = 0.5
	}
	f, err := NewFrame(tbl, pol)
	if err != nil {
		t.Fatal(err)
	}
	got := Summarize(f, DefaultOptions())
	if got.DeluluScore != 100 {
		t.Errorf("DeluluScore = %d, want 100", got.DeluluScore)
	}
	if got.RelationshipVibe != VibeInLove {
		t.Errorf("RelationshipVibe = %q, want %q", got.RelationshipVibe, VibeInLove)
	}
}

func TestSummarize_DashboardCounters(t *testing.T) {
	tbl := table(t,
		msg{"A", -4*time.Hour - 30*time.Minute, "up at 5:30 🔥🔥"},
		msg{"B", -4 * time.Hour, "ok"},
		msg{"A", -4 * time.Hour, "same minute 😭"},
		msg{"A", 2 * time.Hour, strings.Repeat("long ", 40)},
	)
	got := Summarize(frame(t, tbl), DefaultOptions())

	if got.LateNightPercent != 25 {
		t.Errorf("LateNightPercent = %d, want 25", got.LateNightPercent)
	}
	if late := LateNightActivity(tbl, 0, 4); len(late) != 0 {
		t.Errorf("LateNightActivity() = %v, want none in hours 0-4", late)
	}
	if got.OneSidedPercent != 75 || got.RelationshipVibe != VibeOneSided {
		t.Errorf("OneSidedPercent = %d, vibe %q", got.OneSidedPercent, got.RelationshipVibe)
	}
	// Gaps 30m, 0 and 6h; the zero gap is left out of the mean.
	if got.AvgReplyMinutes != 195 {
		t.Errorf("AvgReplyMinutes = %d, want 195", got.AvgReplyMinutes)
	}
	if got.ShortestMessageLength != 2 || got.LongestMessageLength != 200 {
		t.Errorf("message lengths = %d..%d", got.ShortestMessageLength, got.LongestMessageLength)
	}
	if got.Dryness != 57 {
		t.Errorf("Dryness = %d, want 57", got.Dryness)
	}
	if got.TypingEnergy != 12 {
		t.Errorf("TypingEnergy = %d, want 12", got.TypingEnergy)
	}
	if want := map[string]int{"🔥": 2, "😭": 1}; !reflect.DeepEqual(got.EmojiBreakdown, want) {
		t.Errorf("EmojiBreakdown = %v, want %v", got.EmojiBreakdown, want)
	}
}

func TestSummarize_DrynessCapped(t *testing.T) {
	tbl := table(t, msg{"A", 0, strings.Repeat("x", 250)})
	if got := Summarize(frame(t, tbl), DefaultOptions()).Dryness; got != 100 {
		t.Errorf("Dryness = %d, want 100", got)
	}
}
