package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Analysis modes.
const (
	ModeAsync = "async"
	ModeSync  = "sync"
)

// Job store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Sentiment providers.
const (
	SentimentLexicon = "lexicon"
	SentimentGemini  = "gemini"
)

type Config struct {
	Port         string
	AnalysisMode string
	CorsOrigins  []string

	MaxLines     int
	BatchLines   int
	ParseWorkers int
	JobWorkers   int
	JobQueueSize int
	MaxUploadMB  int
	GapMinutes   int
	TopKeywords  int

	JobStore    string
	DatabaseURL string

	SentimentProvider string
	AIAPIKey          string
	GenModel          string

	ArchiveBucket string
	AwsRegion     string
	AwsAccessKey  string
	AwsSecretKey  string

	AnalysisConfigPath string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() (*Config, error) {

	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		AnalysisMode: strings.ToLower(getEnv("ANALYSIS_MODE", ModeAsync)),
		CorsOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),

		MaxLines:     getEnvInt("MAX_LINES", 5000),
		BatchLines:   getEnvInt("BATCH_LINES", 500),
		ParseWorkers: getEnvInt("PARSE_WORKERS", 4),
		JobWorkers:   getEnvInt("JOB_WORKERS", 2),
		JobQueueSize: getEnvInt("JOB_QUEUE_SIZE", 64),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 20),
		GapMinutes:   getEnvInt("GAP_MINUTES", 30),
		TopKeywords:  getEnvInt("TOP_KEYWORDS", 10),

		JobStore:    strings.ToLower(getEnv("JOB_STORE", StoreMemory)),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		SentimentProvider: strings.ToLower(getEnv("SENTIMENT_PROVIDER", SentimentLexicon)),
		AIAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GenModel:          getEnv("GEN_MODEL", "gemini-1.5-flash"),

		ArchiveBucket: getEnv("ARCHIVE_BUCKET", ""),
		AwsRegion:     getEnv("AWS_REGION", "us-east-2"),
		AwsAccessKey:  getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:  getEnv("AWS_SECRET_KEY", ""),

		AnalysisConfigPath: getEnv("ANALYSIS_CONFIG", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.AnalysisMode {
	case ModeAsync, ModeSync:
	default:
		return fmt.Errorf("ANALYSIS_MODE must be %q or %q, got %q", ModeAsync, ModeSync, c.AnalysisMode)
	}

	switch c.JobStore {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL not set")
		}
	default:
		return fmt.Errorf("JOB_STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.JobStore)
	}

	switch c.SentimentProvider {
	case SentimentLexicon:
	case SentimentGemini:
		if c.AIAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set")
		}
	default:
		return fmt.Errorf("SENTIMENT_PROVIDER must be %q or %q, got %q", SentimentLexicon, SentimentGemini, c.SentimentProvider)
	}

	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// MaxUploadBytes is the request body ceiling for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
