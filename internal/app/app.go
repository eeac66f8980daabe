// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/markdave123-py/delulu-meter/internal/config"
	"github.com/markdave123-py/delulu-meter/internal/core"
	engine "github.com/markdave123-py/delulu-meter/internal/core/analysis_engine"
	db "github.com/markdave123-py/delulu-meter/internal/core/database"
	"github.com/markdave123-py/delulu-meter/internal/core/jobstore"
	"github.com/markdave123-py/delulu-meter/internal/core/llm"
	objectclient "github.com/markdave123-py/delulu-meter/internal/core/object-client"
	"github.com/markdave123-py/delulu-meter/internal/core/sentiment"
	"github.com/markdave123-py/delulu-meter/internal/services"
)

type App struct {
	Engine  *engine.Engine
	Service *services.AnalysisService
	Server  *Server

	closers []func() error
}

// NewApp wires the job store, sentiment scorer, extractor, optional archive
// and the analysis engine behind the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	a := &App{}

	eng, err := a.buildEngine(appCtx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	mode, err := services.ParseMode(cfg.AnalysisMode, services.ModeAsync)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Engine = eng
	a.Service = services.NewAnalysisService(eng, mode)
	a.Server = NewServer(cfg, NewRouter(cfg, a.Service, eng))
	log.Printf("App: analysis mode %s, job store %s, sentiment %s", mode, cfg.JobStore, cfg.SentimentProvider)
	return a, nil
}

func (a *App) buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	tuning, err := cfg.Tuning(ctx)
	if err != nil {
		return nil, err
	}

	store, err := a.jobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	scorer, err := a.sentimentScorer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var archive core.ObjectClient
	if cfg.ArchiveBucket != "" {
		s3c, err := objectclient.NewS3Client(ctx, cfg.AwsRegion, cfg.AwsAccessKey, cfg.AwsSecretKey)
		if err != nil {
			return nil, fmt.Errorf("couldn't initialize the archive client, %w", err)
		}
		archive = s3c
		log.Println("Object client initialized and ready.")
	}

	useReadability := false
	extractor := engine.NewDocconvExtractor(useReadability)

	engCfg := &engine.EngineConfig{
		MaxLines:      tuning.MaxLines,
		BatchLines:    tuning.BatchLines,
		ParseWorkers:  cfg.ParseWorkers,
		QueueSize:     cfg.JobQueueSize,
		ArchiveBucket: cfg.ArchiveBucket,
		Metrics:       tuning.MetricOptions(),
	}
	return engine.NewEngine(store, scorer, extractor, archive, engCfg), nil
}

func (a *App) jobStore(ctx context.Context, cfg *config.Config) (core.JobStore, error) {
	if cfg.JobStore != config.StorePostgres {
		return jobstore.NewMemoryStore(), nil
	}
	dbClient, err := db.NewDatabaseClient(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, dbClient.Close)
	log.Println("Database initialized and ready.")
	return dbClient, nil
}

func (a *App) sentimentScorer(ctx context.Context, cfg *config.Config) (core.SentimentScorer, error) {
	if cfg.SentimentProvider != config.SentimentGemini {
		return sentiment.NewLexiconScorer(), nil
	}
	scorer, err := llm.NewGeminiScorer(ctx, cfg.AIAPIKey, cfg.GenModel, 0)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the sentiment scorer, %w", err)
	}
	a.closers = append(a.closers, scorer.Close)
	return scorer, nil
}

// Run starts the job workers and serves HTTP until ctx is cancelled, then
// shuts the server down and waits for in-flight jobs.
func (a *App) Run(ctx context.Context, jobWorkers int) error {
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	a.Engine.Start(workerCtx, jobWorkers)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Start() }()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("App: server shutdown: %v", err)
	}

	stopWorkers()
	a.Engine.Wait()
	return serveErr
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("App: close: %v", err)
		}
	}
	a.closers = nil
}
