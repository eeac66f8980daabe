package analysis_engine

import (
	"context"

	"github.com/markdave123-py/delulu-meter/internal/models"
)

// Analyzer is the pipeline surface used by services and commands.
type Analyzer interface {
	Start(ctx context.Context, numWorkers int)
	Submit(ctx context.Context, up Upload) (*models.Job, error)
	Status(ctx context.Context, id string) (*models.Job, error)
	Analyze(ctx context.Context, up Upload) (*models.Bundle, error)
}

var _ Analyzer = (*Engine)(nil)
