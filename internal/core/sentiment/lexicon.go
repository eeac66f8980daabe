// Package sentiment provides the default message polarity scorer.
package sentiment

import (
	"context"
	"strings"
	"unicode"

	"github.com/markdave123-py/delulu-meter/internal/core"
)

var _ core.SentimentScorer = (*LexiconScorer)(nil)

// LexiconScorer averages word polarities from a fixed lexicon, with
// intensifiers scaling and negators partially flipping the next scored word.
// It is deterministic and never fails.
type LexiconScorer struct {
	words        map[string]float64
	intensifiers map[string]float64
	negators     map[string]bool
}

// NewLexiconScorer returns a scorer using the built-in English lexicon.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{words: polarity, intensifiers: intensifiers, negators: negators}
}

// Polarities scores every text independently.
func (s *LexiconScorer) Polarities(_ context.Context, texts []string) []float64 {
	out := make([]float64, len(texts))
	for i, t := range texts {
		out[i] = s.Polarity(t)
	}
	return out
}

// Polarity returns the mean polarity of the scored words in text, or 0 when
// none of its words are in the lexicon.
func (s *LexiconScorer) Polarity(text string) float64 {
	var (
		sum    float64
		n      int
		scale  = 1.0
		negate bool
	)
	for _, tok := range tokenize(text) {
		if m, ok := s.intensifiers[tok]; ok {
			scale *= m
			continue
		}
		if s.negators[tok] {
			negate = true
			continue
		}
		p, ok := s.words[tok]
		if !ok {
			continue
		}
		p *= scale
		if negate {
			p *= -0.5
		}
		sum += clamp(p)
		n++
		scale, negate = 1.0, false
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if r == '\'' || r == '’' {
			return false
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		return true
	})
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
