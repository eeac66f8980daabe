package core

import "context"

// SentimentScorer maps message text to a polarity in [-1, 1].
// Implementations never fail: an internal error yields 0.0 for that text.
type SentimentScorer interface {
	Polarities(ctx context.Context, texts []string) []float64
}
