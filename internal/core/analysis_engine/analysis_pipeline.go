package analysis_engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/delulu-meter/internal/core"
	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/core/metrics"
	objectclient "github.com/markdave123-py/delulu-meter/internal/core/object-client"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// ErrQueueFull is returned by Submit when no worker slot is free.
var ErrQueueFull = errors.New("analysis queue is full, try again later")

// NewEngine constructs the engine with a bounded job queue.
func NewEngine(store core.JobStore, scorer core.SentimentScorer, extractor core.TextExtractor, archive core.ObjectClient, cfg *EngineConfig) *Engine {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	return &Engine{
		store: store, scorer: scorer, extractor: extractor, archive: archive, cfg: cfg,
		jobs: make(chan queued, cfg.QueueSize),
	}
}

// Start runs numWorkers goroutines reading from the jobs channel. Workers
// exit when ctx is cancelled; Wait blocks until they have.
func (e *Engine) Start(ctx context.Context, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	for w := 1; w <= numWorkers; w++ {
		e.wg.Add(1)
		go func(w int) {
			defer e.wg.Done()
			for {
				select {
				case <-ctx.Done():
					log.Printf("AnalysisEngine: worker %d shutting down", w)
					return
				case q := <-e.jobs:
					log.Printf("AnalysisEngine: processing job %s on worker %d", q.id, w)
					if err := e.processOne(ctx, q); err != nil {
						log.Printf("AnalysisEngine: job %s failed: %v", q.id, err)
					}
				}
			}
		}(w)
	}
}

// Wait blocks until every worker started by Start has returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Submit registers a new job as processing and queues it. It never blocks:
// when the queue is full the job is marked as failed and ErrQueueFull is
// returned alongside it.
func (e *Engine) Submit(ctx context.Context, up Upload) (*models.Job, error) {
	job := &models.Job{
		ID:        uuid.NewString(),
		Status:    models.JobStatusProcessing,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("register job: %w", err)
	}
	e.submitted.Add(1)

	select {
	case e.jobs <- queued{id: job.ID, upload: up}:
		return job, nil
	default:
	}

	e.failed.Add(1)
	failed := finished(job.ID, job.CreatedAt, nil, ErrQueueFull)
	if _, err := e.store.CompareAndSwap(ctx, job.ID, models.JobStatusProcessing, failed); err != nil {
		log.Printf("AnalysisEngine: could not record rejection of job %s: %v", job.ID, err)
	}
	return failed, ErrQueueFull
}

// Status returns the current snapshot of a job. Unknown ids are reported as
// still processing so that pollers never see a hard failure for a job they
// were handed.
func (e *Engine) Status(ctx context.Context, id string) (*models.Job, error) {
	job, err := e.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup job %s: %w", id, err)
	}
	if job == nil {
		return &models.Job{ID: id, Status: models.JobStatusProcessing}, nil
	}
	return job, nil
}

// Analyze runs the full pipeline inline and returns the bundle.
func (e *Engine) Analyze(ctx context.Context, up Upload) (b *models.Bundle, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %v", metrics.ErrMetricFault, r)
		}
	}()

	table, err := e.buildTable(ctx, up)
	if err != nil {
		return nil, err
	}

	polarity := e.scorer.Polarities(ctx, table.Messages())
	frame, err := metrics.NewFrame(table, polarity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", metrics.ErrMetricFault, err)
	}
	return metrics.Compute(frame, e.cfg.Metrics)
}

// buildTable streams the decoded upload through line reading, batching and
// parallel parsing, then reassembles one table in input order.
func (e *Engine) buildTable(ctx context.Context, up Upload) (*chatlog.Table, error) {
	text := e.decodeUpload(ctx, up)

	// Build an errgroup to tie the pipeline stages together.
	g, gctx := errgroup.WithContext(ctx)

	// text -> lines (receive-only channel).
	lineCh := streamLines(gctx, g, strings.NewReader(text), e.cfg.MaxLines)

	// lines -> batches.
	batchCh := streamBatches(gctx, g, lineCh, e.cfg.BatchLines)

	// batches -> records, keyed by batch position.
	parsed := parseBatches(gctx, g, batchCh, e.cfg.ParseWorkers)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}
	return chatlog.BuildTable(parsed.ordered()...)
}

// processOne runs one queued job to completion and records its outcome.
// The job outlives the request that created it, so cancellation of the
// worker context only stops new jobs from being picked up. Jobs carry no
// deadline; MaxLines is their only bound.
func (e *Engine) processOne(ctx context.Context, q queued) error {
	proctx := context.WithoutCancel(ctx)

	e.archiveUpload(proctx, q)

	created := time.Now().UTC()
	if cur, err := e.store.Get(proctx, q.id); err == nil && cur != nil {
		created = cur.CreatedAt
	}

	bundle, runErr := e.Analyze(proctx, q.upload)
	if runErr != nil {
		e.failed.Add(1)
	} else {
		e.succeeded.Add(1)
	}

	next := finished(q.id, created, bundle, runErr)
	ok, err := e.store.CompareAndSwap(proctx, q.id, models.JobStatusProcessing, next)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	if !ok {
		return fmt.Errorf("job %s was no longer processing", q.id)
	}
	if runErr != nil {
		return runErr
	}
	log.Printf("AnalysisEngine: job %s done (%d messages)", q.id, bundle.TotalMessages)
	return nil
}

// archiveUpload copies the raw upload to object storage when configured.
// Failures are logged and never fail the job.
func (e *Engine) archiveUpload(ctx context.Context, q queued) {
	if e.archive == nil || e.cfg.ArchiveBucket == "" {
		return
	}
	key := objectclient.ArchiveKey(q.id, q.upload.FileName)
	url, err := e.archive.UploadFile(ctx, e.cfg.ArchiveBucket, key, bytes.NewReader(q.upload.Data), q.upload.ContentType)
	if err != nil {
		log.Printf("AnalysisEngine: archive of job %s failed: %v", q.id, err)
		return
	}
	log.Printf("AnalysisEngine: archived job %s to %s", q.id, url)
}

// finished builds the terminal snapshot for a job.
func finished(id string, created time.Time, b *models.Bundle, err error) *models.Job {
	now := time.Now().UTC()
	job := &models.Job{ID: id, CreatedAt: created, FinishedAt: &now}
	if err != nil {
		job.Status = models.JobStatusError
		job.ErrorMessage = err.Error()
		return job
	}
	job.Status = models.JobStatusDone
	job.Result = b
	return job
}
