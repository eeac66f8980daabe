package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ANALYSIS_MODE", "JOB_STORE", "SENTIMENT_PROVIDER", "MAX_LINES", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.AnalysisMode != ModeAsync || cfg.JobStore != StoreMemory {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxLines != 5000 {
		t.Errorf("MaxLines = %d, want 5000", cfg.MaxLines)
	}
	if len(cfg.CorsOrigins) != 1 || cfg.CorsOrigins[0] != "*" {
		t.Errorf("CorsOrigins = %v", cfg.CorsOrigins)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ANALYSIS_MODE", "SYNC")
	t.Setenv("MAX_LINES", "not-a-number")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.AnalysisMode != ModeSync {
		t.Errorf("AnalysisMode = %q", cfg.AnalysisMode)
	}
	if cfg.MaxLines != 5000 {
		t.Errorf("invalid int should fall back, got %d", cfg.MaxLines)
	}
	if len(cfg.CorsOrigins) != 2 || cfg.CorsOrigins[1] != "https://b.example" {
		t.Errorf("CorsOrigins = %v", cfg.CorsOrigins)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{AnalysisMode: ModeAsync, JobStore: StoreMemory, SentimentProvider: SentimentLexicon, MaxUploadMB: 1}
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad mode", func(c *Config) { c.AnalysisMode = "batch" }, true},
		{"postgres without url", func(c *Config) { c.JobStore = StorePostgres }, true},
		{"postgres with url", func(c *Config) { c.JobStore = StorePostgres; c.DatabaseURL = "postgres://x" }, false},
		{"gemini without key", func(c *Config) { c.SentimentProvider = SentimentGemini }, true},
		{"unknown store", func(c *Config) { c.JobStore = "redis" }, true},
		{"zero upload", func(c *Config) { c.MaxUploadMB = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTuning_Overlay(t *testing.T) {
	content := `
gap_minutes: 45
balance_threshold: 0.6
late_night_start: 1
late_night_end: 5
`
	path := writeTempFile(t, "tuning.yaml", content)
	tn, err := LoadTuning(context.Background(), path, DefaultTuning())
	if err != nil {
		t.Fatalf("LoadTuning() error = %v", err)
	}
	if tn.GapMinutes != 45 || tn.BalanceThreshold != 0.6 {
		t.Errorf("tuning = %+v", tn)
	}
	if tn.TopKeywords != 10 || tn.MaxLines != 5000 {
		t.Errorf("unset keys should keep defaults, got %+v", tn)
	}
	opts := tn.MetricOptions()
	if opts.Gap != 45*time.Minute || opts.LateNightStart != 1 || opts.LateNightEnd != 5 {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadTuning_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", `gap_minutes: [`},
		{"negative gap", `gap_minutes: -1`},
		{"threshold out of range", `balance_threshold: 1.5`},
		{"bad hour", `late_night_end: 24`},
		{"concise above elaborative", "concise_words: 30\nelaborative_words: 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "tuning.yaml", tt.content)
			if _, err := LoadTuning(context.Background(), path, DefaultTuning()); err == nil {
				t.Error("LoadTuning() expected error")
			}
		})
	}
}

func TestLoadTuning_FileNotFound(t *testing.T) {
	if _, err := LoadTuning(context.Background(), "/nonexistent/tuning.yaml", DefaultTuning()); err == nil {
		t.Error("LoadTuning() expected error for missing file")
	}
}

func TestConfig_TuningFromEnv(t *testing.T) {
	cfg := &Config{MaxLines: 100, BatchLines: 10, GapMinutes: 15, TopKeywords: 3}
	tn, err := cfg.Tuning(context.Background())
	if err != nil {
		t.Fatalf("Tuning() error = %v", err)
	}
	if tn.MaxLines != 100 || tn.BatchLines != 10 || tn.GapMinutes != 15 || tn.TopKeywords != 3 {
		t.Errorf("tuning = %+v", tn)
	}
}
