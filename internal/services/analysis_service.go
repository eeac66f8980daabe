package services

import (
	"context"
	"fmt"

	engine "github.com/markdave123-py/delulu-meter/internal/core/analysis_engine"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// Mode selects how an analysis request is run.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeAsync Mode = "async"
)

// ParseMode validates a mode name. An empty name yields def.
func ParseMode(s string, def Mode) (Mode, error) {
	switch Mode(s) {
	case "":
		return def, nil
	case ModeSync, ModeAsync:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (must be sync or async)", s)
	}
}

// Outcome is the result of one analysis request. Exactly one of Bundle
// (sync) or Job (async) is set.
type Outcome struct {
	Mode   Mode
	Bundle *models.Bundle
	Job    *models.Job
}

// AnalysisService is the single entry point into the analysis pipeline.
type AnalysisService struct {
	analyzer engine.Analyzer
	mode     Mode
}

func NewAnalysisService(analyzer engine.Analyzer, mode Mode) *AnalysisService {
	return &AnalysisService{analyzer: analyzer, mode: mode}
}

// DefaultMode is the mode used when a request does not choose one.
func (s *AnalysisService) DefaultMode() Mode { return s.mode }

// Analyze runs the upload in the given mode; an empty mode uses the default.
func (s *AnalysisService) Analyze(ctx context.Context, up engine.Upload, mode Mode) (*Outcome, error) {
	if mode == "" {
		mode = s.mode
	}
	switch mode {
	case ModeSync:
		b, err := s.analyzer.Analyze(ctx, up)
		if err != nil {
			return nil, err
		}
		return &Outcome{Mode: ModeSync, Bundle: b}, nil
	case ModeAsync:
		job, err := s.analyzer.Submit(ctx, up)
		if err != nil {
			return nil, err
		}
		return &Outcome{Mode: ModeAsync, Job: job}, nil
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}

// Job returns the current state of an async job.
func (s *AnalysisService) Job(ctx context.Context, id string) (*models.Job, error) {
	return s.analyzer.Status(ctx, id)
}
