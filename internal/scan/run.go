package scan

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Run scans each path received until paths is closed, returning the
// combined Stats.
//
// File errors are counted in the Stats and do not stop the run. A
// failing Sink or a cancelled ctx stops it; files already being
// scanned are finished first.
//
// With more than one worker files are scanned concurrently and each
// file's hits are held back until every earlier file has been emitted,
// so the Sink sees the same sequence as a sequential run.
func (s *Scanner) Run(ctx context.Context, paths <-chan string, workers int) (Stats, error) {
	if workers <= 1 {
		return s.runSequential(ctx, paths)
	}
	return s.runParallel(ctx, paths, workers)
}

func (s *Scanner) runSequential(ctx context.Context, paths <-chan string) (Stats, error) {
	var stats Stats
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case path, ok := <-paths:
			if !ok {
				return stats, nil
			}
			if err := s.ScanFile(ctx, path, &stats); isFatal(err) {
				return stats, err
			}
		}
	}
}

// isFatal reports whether err should end a run.
func isFatal(err error) bool {
	var sinkErr *SinkError
	return errors.As(err, &sinkErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// fileResult is the outcome of scanning one file in a parallel run.
type fileResult struct {
	hits  []Hit
	stats Stats
	err   error
	done  chan struct{}
}

func (s *Scanner) runParallel(ctx context.Context, paths <-chan string, workers int) (Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := new(errgroup.Group)
	g.SetLimit(workers)

	// Results in input order. The buffer bounds how far scanning can
	// run ahead of the emitter.
	ordered := make(chan *fileResult, workers)
	go func() {
		defer close(ordered)
		for {
			var path string
			var ok bool
			select {
			case <-ctx.Done():
				return
			case path, ok = <-paths:
				if !ok {
					return
				}
			}
			r := &fileResult{done: make(chan struct{})}
			select {
			case <-ctx.Done():
				return
			case ordered <- r:
			}
			g.Go(func() error {
				defer close(r.done)
				collect := SinkFunc(func(h Hit) error {
					r.hits = append(r.hits, h)
					return nil
				})
				r.err = s.with(collect).ScanFile(ctx, path, &r.stats)
				return nil
			})
		}
	}()

	var stats Stats
	var runErr error
	for r := range ordered {
		<-r.done
		if runErr != nil {
			continue
		}
		stats.Add(r.stats)
		if isFatal(r.err) {
			runErr = r.err
			cancel()
			continue
		}
		for _, h := range r.hits {
			if err := s.sink.Emit(h); err != nil {
				runErr = &SinkError{Err: err}
				cancel()
				break
			}
		}
	}
	_ = g.Wait()
	if runErr == nil && ctx.Err() != nil {
		// Cancelled by the caller rather than by a failure here.
		runErr = ctx.Err()
	}
	return stats, runErr
}
