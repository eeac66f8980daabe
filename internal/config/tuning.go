package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/markdave123-py/delulu-meter/internal/core/metrics"
)

// Tuning holds the analysis thresholds. It can be overridden by a YAML file.
type Tuning struct {
	MaxLines         int     `yaml:"max_lines"`
	BatchLines       int     `yaml:"batch_lines"`
	GapMinutes       int     `yaml:"gap_minutes"`
	TopKeywords      int     `yaml:"top_keywords"`
	BalanceThreshold float64 `yaml:"balance_threshold"`
	ConciseWords     float64 `yaml:"concise_words"`
	ElaborativeWords float64 `yaml:"elaborative_words"`
	QuestionRate     float64 `yaml:"question_rate"`
	EmojiRate        float64 `yaml:"emoji_rate"`
	LateNightStart   int     `yaml:"late_night_start"`
	LateNightEnd     int     `yaml:"late_night_end"`
}

// DefaultTuning returns the built-in thresholds.
func DefaultTuning() Tuning {
	o := metrics.DefaultOptions()
	return Tuning{
		MaxLines:         5000,
		BatchLines:       500,
		GapMinutes:       int(o.Gap / time.Minute),
		TopKeywords:      o.TopKeywords,
		BalanceThreshold: o.BalanceThreshold,
		ConciseWords:     o.ConciseWords,
		ElaborativeWords: o.ElaborativeWords,
		QuestionRate:     o.QuestionRate,
		EmojiRate:        o.EmojiRate,
		LateNightStart:   o.LateNightStart,
		LateNightEnd:     o.LateNightEnd,
	}
}

// Tuning returns the thresholds implied by the environment, overlaid with
// ANALYSIS_CONFIG when it is set.
func (c *Config) Tuning(ctx context.Context) (Tuning, error) {
	t := DefaultTuning()
	t.MaxLines = c.MaxLines
	t.BatchLines = c.BatchLines
	t.GapMinutes = c.GapMinutes
	t.TopKeywords = c.TopKeywords

	if c.AnalysisConfigPath == "" {
		return t, ValidateTuning(&t)
	}
	return LoadTuning(ctx, c.AnalysisConfigPath, t)
}

// LoadTuning reads a YAML file on top of base and validates the result.
// Keys missing from the file keep their base value.
func LoadTuning(_ context.Context, path string, base Tuning) (Tuning, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- operator-provided config path
	if err != nil {
		return Tuning{}, fmt.Errorf("reading analysis config: %w", err)
	}

	t := base
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("parsing analysis config: %w", err)
	}

	if err := ValidateTuning(&t); err != nil {
		return Tuning{}, fmt.Errorf("validating analysis config: %w", err)
	}
	return t, nil
}

// ValidateTuning checks sizes are positive and thresholds are in range.
func ValidateTuning(t *Tuning) error {
	switch {
	case t.MaxLines <= 0:
		return errors.New("max_lines must be positive")
	case t.BatchLines <= 0:
		return errors.New("batch_lines must be positive")
	case t.GapMinutes <= 0:
		return errors.New("gap_minutes must be positive")
	case t.TopKeywords <= 0:
		return errors.New("top_keywords must be positive")
	case t.BalanceThreshold <= 0 || t.BalanceThreshold > 1:
		return errors.New("balance_threshold must be in (0, 1]")
	case t.ConciseWords < 0 || t.ElaborativeWords < t.ConciseWords:
		return errors.New("concise_words must be >= 0 and <= elaborative_words")
	case t.QuestionRate < 0 || t.EmojiRate < 0:
		return errors.New("question_rate and emoji_rate must not be negative")
	case !validHour(t.LateNightStart) || !validHour(t.LateNightEnd):
		return errors.New("late_night_start and late_night_end must be hours 0-23")
	}
	return nil
}

func validHour(h int) bool { return h >= 0 && h <= 23 }

// MetricOptions converts the thresholds into metric computer options.
func (t Tuning) MetricOptions() metrics.Options {
	o := metrics.DefaultOptions()
	o.Gap = time.Duration(t.GapMinutes) * time.Minute
	o.TopKeywords = t.TopKeywords
	o.BalanceThreshold = t.BalanceThreshold
	o.ConciseWords = t.ConciseWords
	o.ElaborativeWords = t.ElaborativeWords
	o.QuestionRate = t.QuestionRate
	o.EmojiRate = t.EmojiRate
	o.LateNightStart = t.LateNightStart
	o.LateNightEnd = t.LateNightEnd
	return o
}
