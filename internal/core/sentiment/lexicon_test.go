package sentiment

import (
	"context"
	"math"
	"testing"
)

func TestPolarity(t *testing.T) {
	s := NewLexiconScorer()
	tests := []struct {
		text string
		want float64
	}{
		{"hello there", 0},
		{"", 0},
		{"this is good", 0.7},
		{"this is bad", -0.7},
		{"good and bad", 0},
		{"not good", -0.35},
		{"very good", 0.91},
		{"super awesome", 1},
		{"I don't hate it", 0.4},
		{"GOOD!!!", 0.7},
	}
	for _, tt := range tests {
		got := s.Polarity(tt.text)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Polarity(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestPolaritiesBounded(t *testing.T) {
	s := NewLexiconScorer()
	texts := []string{"absolutely extremely super awesome", "extremely really worst terrible awful", "meh"}
	got := s.Polarities(context.Background(), texts)
	if len(got) != len(texts) {
		t.Fatalf("Polarities() returned %d values, want %d", len(got), len(texts))
	}
	for i, p := range got {
		if p < -1 || p > 1 {
			t.Errorf("Polarities()[%d] = %v out of range", i, p)
		}
	}
}
