package analysis_engine

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// streamLines converts an io.Reader into a stream of raw lines.
//
// r:        decoded upload text.
// maxLines: hard ceiling; lines past it are never read (<= 0 means no limit).
// out:      receive-only channel of lines; closed when reading completes.
func streamLines(
	ctx context.Context,
	g *errgroup.Group,
	r io.Reader,
	maxLines int,
) <-chan string {
	out := make(chan string, 64)

	g.Go(func() error {
		defer close(out)

		br := bufio.NewReader(r)
		for n := 0; maxLines <= 0 || n < maxLines; n++ {
			line, err := br.ReadString('\n')
			if line == "" && errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}

			select {
			case out <- strings.TrimSuffix(line, "\n"):
			case <-ctx.Done():
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
		}
		return nil
	})

	return out
}
