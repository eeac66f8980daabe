package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestParsePolarities(t *testing.T) {
	got, err := parsePolarities("```json\n[0.5, -2, 1.5, 0]\n```", 4)
	if err != nil {
		t.Fatalf("parsePolarities() error = %v", err)
	}
	want := []float64{0.5, -1, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parsePolarities()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := parsePolarities("[0.1]", 2); err == nil {
		t.Error("parsePolarities() expected count mismatch error")
	}
	if _, err := parsePolarities("not json", 1); err == nil {
		t.Error("parsePolarities() expected decode error")
	}
}

func TestPolarities_BatchesAndFallsBack(t *testing.T) {
	calls := 0
	g := &GeminiScorer{batchSize: 2}
	g.generate = func(_ context.Context, prompt string) (string, error) {
		calls++
		if strings.Contains(prompt, "boom") {
			return "", errors.New("unavailable")
		}
		lines := strings.Count(prompt, "\n")
		parts := make([]string, lines)
		for i := range parts {
			parts[i] = "0.5"
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	}

	got := g.Polarities(context.Background(), []string{"a", "b", "boom", "c", "d"})
	if calls != 3 {
		t.Errorf("generate called %d times, want 3", calls)
	}
	want := []float64{0.5, 0.5, 0, 0, 0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Polarities()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
