package metrics

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

var base = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type msg struct {
	author  string
	offset  time.Duration
	message string
}

func table(t *testing.T, msgs ...msg) *chatlog.Table {
	t.Helper()
	recs := make([]models.Record, len(msgs))
	for i, m := range msgs {
		recs[i] = models.Record{Timestamp: base.Add(m.offset), Author: m.author, Message: m.message}
	}
	tbl, err := chatlog.BuildTable(recs)
	if err != nil {
		t.Fatalf("BuildTable() error = %v", err)
	}
	return tbl
}

func frame(t *testing.T, tbl *chatlog.Table) *Frame {
	t.Helper()
	f, err := NewFrame(tbl, make([]float64, tbl.Len()))
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	return f
}

func scenario(t *testing.T) *chatlog.Table {
	tbl, err := chatlog.Parse([]byte("01/01/24, 10:00 - Alice: hi\n01/01/24, 10:05 - Bob: hello\n01/01/24, 10:06 - Bob: how are you"), 0)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tbl
}

func TestScenario_InitiationAndReply(t *testing.T) {
	tbl := scenario(t)

	if got, want := InitiationIndex(tbl), map[string]float64{"Alice": 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("InitiationIndex() = %v, want %v", got, want)
	}
	if got, want := ReplyTimes(tbl), map[string]float64{"Bob": 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReplyTimes() = %v, want %v", got, want)
	}
}

func TestInitiationIndex_MultipleDays(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "morning"},
		msg{"B", 24 * time.Hour, "next day"},
		msg{"A", 25 * time.Hour, "reply"},
		msg{"B", 48 * time.Hour, "third day"},
	)
	want := map[string]float64{"A": 33.3, "B": 66.7}
	if got := InitiationIndex(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("InitiationIndex() = %v, want %v", got, want)
	}
}

func TestReplyTimes_OmitsNonRepliers(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "one"},
		msg{"A", time.Minute, "two"},
		msg{"A", 2 * time.Minute, "three"},
	)
	if got := ReplyTimes(tbl); len(got) != 0 {
		t.Errorf("ReplyTimes() = %v, want empty", got)
	}

	tbl = table(t,
		msg{"A", 0, "q"},
		msg{"B", 2 * time.Minute, "a"},
		msg{"A", 3 * time.Minute, "q"},
		msg{"B", 7 * time.Minute, "a"},
	)
	want := map[string]float64{"B": 3, "A": 1}
	if got := ReplyTimes(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("ReplyTimes() = %v, want %v", got, want)
	}
}

func TestEngagementBalance(t *testing.T) {
	tests := []struct {
		name string
		msgs []msg
		want string
	}{
		{"single author", []msg{{"A", 0, "x"}, {"A", time.Minute, "y"}}, InsufficientData},
		{"even", []msg{{"A", 0, "x"}, {"B", time.Minute, "y"}}, Balanced},
		{"lopsided", []msg{{"A", 0, "x"}, {"A", time.Minute, "x"}, {"B", 2 * time.Minute, "y"}}, Unbalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EngagementBalance(table(t, tt.msgs...), 0.8); got != tt.want {
				t.Errorf("EngagementBalance() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentimentTimelineAndVariability(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "x"},
		msg{"B", time.Hour, "y"},
		msg{"A", 24 * time.Hour, "z"},
	)
	f, err := NewFrame(tbl, []float64{0.5, -0.1, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"2024-01-01": 0.2, "2024-01-02": 1}
	if got := SentimentTimeline(f); !reflect.DeepEqual(got, want) {
		t.Errorf("SentimentTimeline() = %v, want %v", got, want)
	}
	if got := SentimentVariability(f.Polarity); got != 0.551 {
		t.Errorf("SentimentVariability() = %v, want 0.551", got)
	}
	if got := SentimentVariability([]float64{0.3}); got != 0 {
		t.Errorf("SentimentVariability(one) = %v, want 0", got)
	}
}

func TestContinuityIndex(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "x"},
		msg{"B", 10 * time.Minute, "x"},
		msg{"A", 35 * time.Minute, "x"},
		msg{"B", 3 * time.Hour, "x"},
		msg{"A", 3*time.Hour + 5*time.Minute, "x"},
	)
	if got := ContinuityIndex(tbl, 30*time.Minute); got != 35*time.Minute {
		t.Errorf("ContinuityIndex() = %v, want 35m", got)
	}
	if got := ContinuityIndex(table(t, msg{"A", 0, "x"}), 30*time.Minute); got != 0 {
		t.Errorf("ContinuityIndex(single) = %v, want 0", got)
	}
	sum := ContinuitySummary(tbl, 30*time.Minute)
	if sum.Minutes != 35 || sum.Duration != "35m0s" {
		t.Errorf("ContinuitySummary() = %+v", sum)
	}
}

func TestLateNightActivity(t *testing.T) {
	midnight := -10 * time.Hour
	tbl := table(t,
		msg{"A", midnight, "x"},
		msg{"B", midnight + 4*time.Hour + 59*time.Minute, "x"},
		msg{"B", midnight + 5*time.Hour, "x"},
		msg{"A", 0, "x"},
	)
	want := map[string]int{"A": 1, "B": 1}
	if got := LateNightActivity(tbl, 0, 4); !reflect.DeepEqual(got, want) {
		t.Errorf("LateNightActivity() = %v, want %v", got, want)
	}
}

func TestEmojiUsageAndStyle(t *testing.T) {
	opts := DefaultOptions()
	tbl := table(t,
		msg{"A", 0, "ok 😂😂"},
		msg{"A", time.Minute, "why? 🔥"},
		msg{"B", 2 * time.Minute, "this is a long and thoughtful message that keeps going well past twenty words because B enjoys writing in full sentences every single time they reply"},
		msg{"C", 3 * time.Minute, "a reasonably sized message of about eight words"},
	)
	wantEmoji := map[string]int{"A": 3, "B": 0, "C": 0}
	if got := EmojiUsage(tbl, opts.Emoji); !reflect.DeepEqual(got, wantEmoji) {
		t.Errorf("EmojiUsage() = %v, want %v", got, wantEmoji)
	}

	wantStyle := map[string]string{
		"A": "concise + inquisitive + expressive",
		"B": "elaborative",
		"C": "balanced",
	}
	if got := CommunicationStyle(tbl, opts); !reflect.DeepEqual(got, wantStyle) {
		t.Errorf("CommunicationStyle() = %v, want %v", got, wantStyle)
	}
}

func TestInteractionGaps(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "x"},
		msg{"B", 90 * time.Minute, "x"},
		msg{"B", 100 * time.Minute, "x"},
		msg{"A", 5 * time.Hour, "x"},
	)
	want := map[string]float64{"B": 1.5, "A": 3.33}
	if got := InteractionGaps(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("InteractionGaps() = %v, want %v", got, want)
	}
}

func TestInteractionGaps_CountsSameAuthorSilence(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "x"},
		msg{"B", 10 * time.Minute, "x"},
		msg{"B", 3 * time.Hour, "x"},
		msg{"A", 3*time.Hour + 10*time.Minute, "x"},
	)
	// B's longest silence is the 2h50m before their own follow-up.
	want := map[string]float64{"B": 2.83, "A": 0.17}
	if got := InteractionGaps(tbl); !reflect.DeepEqual(got, want) {
		t.Errorf("InteractionGaps() = %v, want %v", got, want)
	}
}

func TestKeywordThemes(t *testing.T) {
	tbl := table(t,
		msg{"A", 0, "Pizza tonight? pizza!"},
		msg{"B", time.Minute, "yes, PIZZA tonight and movie"},
		msg{"A", 2 * time.Minute, "the movie was fun lol"},
	)
	got := KeywordThemes(tbl, 10)
	want := []models.KeywordCount{{Word: "pizza", Count: 3}, {Word: "tonight", Count: 2}, {Word: "movie", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeywordThemes() = %v, want %v", got, want)
	}
	for _, kw := range got {
		if len([]rune(kw.Word)) <= 3 {
			t.Errorf("KeywordThemes() kept short token %q", kw.Word)
		}
	}
	if got := KeywordThemes(tbl, 1); len(got) != 1 || got[0].Word != "pizza" {
		t.Errorf("KeywordThemes(n=1) = %v", got)
	}
}

func TestHarmonyScore(t *testing.T) {
	tests := []struct {
		name      string
		balance   string
		replies   map[string]float64
		sentiment float64
		want      float64
	}{
		{"all good", Balanced, map[string]float64{"A": 5}, 1, 100},
		{"single author neutral", InsufficientData, nil, 0, 50},
		{"slow replies", Unbalanced, map[string]float64{"A": 45, "B": 60}, -1, 36.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HarmonyScore(tt.balance, tt.replies, tt.sentiment, 30); got != tt.want {
				t.Errorf("HarmonyScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompute_SingleAuthor(t *testing.T) {
	var msgs []msg
	for i := 0; i < 10; i++ {
		msgs = append(msgs, msg{"Solo", time.Duration(i) * time.Minute, "talking to myself again"})
	}
	b, err := Compute(frame(t, table(t, msgs...)), DefaultOptions())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if b.EngagementBalance != InsufficientData {
		t.Errorf("EngagementBalance = %q, want %q", b.EngagementBalance, InsufficientData)
	}
	if b.HarmonyScore != 50 {
		t.Errorf("HarmonyScore = %v, want 50", b.HarmonyScore)
	}
	if len(b.ReplyTimes) != 0 {
		t.Errorf("ReplyTimes = %v, want empty", b.ReplyTimes)
	}
	if b.Overview.RelationshipVibe != VibeOneSided {
		t.Errorf("RelationshipVibe = %q, want %q", b.Overview.RelationshipVibe, VibeOneSided)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	tbl := scenario(t)
	b1, err := Compute(frame(t, tbl), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b2, err := Compute(frame(t, scenario(t)), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(b1, b2) {
		t.Error("Compute() is not deterministic for identical input")
	}
	if b1.TotalMessages != 3 || len(b1.Authors) != 2 {
		t.Errorf("TotalMessages = %d, Authors = %v", b1.TotalMessages, b1.Authors)
	}
}

func TestGuard_RecoversPanic(t *testing.T) {
	err := guard("boom", func() { panic("kaboom") })
	if !errors.Is(err, ErrMetricFault) {
		t.Errorf("guard() error = %v, want ErrMetricFault", err)
	}
	if err := guard("fine", func() {}); err != nil {
		t.Errorf("guard() error = %v, want nil", err)
	}
}

func TestNewFrame_Mismatch(t *testing.T) {
	if _, err := NewFrame(scenario(t), []float64{0}); err == nil {
		t.Error("NewFrame() expected mismatch error")
	}
	if _, err := NewFrame(nil, nil); !errors.Is(err, chatlog.ErrNoData) {
		t.Errorf("NewFrame(nil) error = %v, want ErrNoData", err)
	}
}
