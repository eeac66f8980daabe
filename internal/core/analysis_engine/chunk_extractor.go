package analysis_engine

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// streamBatches groups incoming lines into position-tagged batches.
//
// lines:     upstream line channel.
// batchSize: lines per batch; the last batch may be shorter.
// out:       receive-only channel of batches.
func streamBatches(
	ctx context.Context,
	g *errgroup.Group,
	lines <-chan string,
	batchSize int,
) <-chan batch {
	out := make(chan batch, 8)
	if batchSize <= 0 {
		batchSize = 500
	}

	g.Go(func() error {
		defer close(out)

		var (
			buf []string
			pos int
		)

		// flush emits the current buffer as a batch and starts a new one.
		flush := func() error {
			if len(buf) == 0 {
				return nil
			}
			b := batch{Pos: pos, Lines: buf}
			pos++
			buf = make([]string, 0, batchSize)

			select {
			case out <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
			return nil
		}

		for line := range lines {
			buf = append(buf, line)
			if len(buf) >= batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}

		return flush()
	})

	return out
}
