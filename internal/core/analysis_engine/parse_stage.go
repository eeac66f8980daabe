package analysis_engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/models"
)

// parsedBatches collects per-batch parse results by batch position.
type parsedBatches struct {
	mu    sync.Mutex
	byPos map[int][]models.Record
}

// ordered returns the batches in input order.
func (p *parsedBatches) ordered() [][]models.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]models.Record, 0, len(p.byPos))
	for pos := 0; len(out) < len(p.byPos); pos++ {
		if recs, ok := p.byPos[pos]; ok {
			out = append(out, recs)
		}
	}
	return out
}

// parseBatches fans batches out to workers that parse and normalize each
// line. Results are keyed by batch position so the caller can rebuild a
// single global ordering regardless of which worker finished first.
func parseBatches(
	ctx context.Context,
	g *errgroup.Group,
	in <-chan batch,
	workers int,
) *parsedBatches {
	res := &parsedBatches{byPos: make(map[int][]models.Record)}
	if workers <= 0 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for b := range in {
				if err := ctx.Err(); err != nil {
					return err
				}
				recs := chatlog.ParseLines(b.Lines)
				res.mu.Lock()
				res.byPos[b.Pos] = recs
				res.mu.Unlock()
			}
			return nil
		})
	}
	return res
}
