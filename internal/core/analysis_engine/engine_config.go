package analysis_engine

import (
	"sync"
	"sync/atomic"

	"github.com/markdave123-py/delulu-meter/internal/core"
	"github.com/markdave123-py/delulu-meter/internal/core/metrics"
)

// EngineConfig tunes the analysis pipeline.
//
// MaxLines:      hard ceiling on lines read from one upload (e.g., 5000).
// BatchLines:    lines per parse batch.
// ParseWorkers:  goroutines parsing batches concurrently.
// QueueSize:     pending jobs buffered before submissions are refused.
// ArchiveBucket: when set, raw uploads are copied to object storage.
// Metrics:       thresholds handed to the metric computers.
type EngineConfig struct {
	MaxLines      int
	BatchLines    int
	ParseWorkers  int
	QueueSize     int
	ArchiveBucket string
	Metrics       metrics.Options
}

// Upload is one raw chat export as received from a caller.
type Upload struct {
	Data        []byte
	FileName    string
	ContentType string
}

// batch is the internal unit passed through the parse pipeline.
//
// Pos:   zero-based position of the batch inside the upload.
// Lines: raw lines of the batch, in input order.
type batch struct {
	Pos   int
	Lines []string
}

// queued is one accepted job waiting for a worker.
type queued struct {
	id     string
	upload Upload
}

// Engine runs the parse -> table -> metrics pipeline either inline or on
// background workers that record the outcome in a job store.
//
// store:     job registry.
// scorer:    sentiment polarity provider.
// extractor: converts non-text uploads to text.
// archive:   optional object storage for raw uploads (nil disables).
// cfg:       runtime tuning knobs.
// jobs:      in-memory queue of accepted jobs.
type Engine struct {
	store     core.JobStore
	scorer    core.SentimentScorer
	extractor core.TextExtractor
	archive   core.ObjectClient
	cfg       *EngineConfig
	jobs      chan queued
	wg        sync.WaitGroup

	submitted atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
}

// Stats returns job outcome counters.
func (e *Engine) Stats() map[string]int64 {
	return map[string]int64{
		"jobs_submitted": e.submitted.Load(),
		"jobs_succeeded": e.succeeded.Load(),
		"jobs_failed":    e.failed.Load(),
	}
}
