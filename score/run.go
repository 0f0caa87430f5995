package score

import (
	"context"
	"runtime"

	sent "github.com/revelaction/entail/sentence"
	"golang.org/x/sync/errgroup"
)

// Outcome is the Result of the pair at Index of the scored slice. Err is
// the pair's own error: malformed trees, missing frequencies or an
// undefined score.
type Outcome struct {
	Index  int
	Result Result
	Err    error
}

// Run scores pairs concurrently with at most workers goroutines (NumCPU
// when workers <= 0) and calls onOutcome for every pair in input order.
//
// Pair errors do not stop the run, they are delivered in the Outcome. Run
// returns early with the context error when ctx is cancelled, or with the
// error returned by onOutcome.
func (s *Scorer) Run(ctx context.Context, pairs []sent.Pair, workers int, onOutcome func(Outcome) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]chan Outcome, len(pairs))
	for i := range outcomes {
		outcomes[i] = make(chan Outcome, 1)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers + 1)

	// consumer, in input order
	g.Go(func() error {
		for _, ch := range outcomes {
			select {
			case o := <-ch:
				if err := onOutcome(o); err != nil {
					return err
				}
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	for i := range pairs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := s.Score(pairs[i])
			outcomes[i] <- Outcome{Index: i, Result: res, Err: err}
			return nil
		})
	}

	return g.Wait()
}
