package scan

import "fmt"

// Stats accumulates the counters of a run. It is owned by whoever
// drives the run and is not safe for concurrent use.
type Stats struct {
	Files   int64 // files examined
	Bytes   int64 // bytes examined
	Hits    int64 // verified tokens emitted
	Skipped int64 // files too short to hold a token
	Failed  int64 // files that could not be read
	lastErr error
}

func (s *Stats) fail(err error) {
	s.Failed++
	s.lastErr = err
}

// Add merges o into s.
func (s *Stats) Add(o Stats) {
	s.Files += o.Files
	s.Bytes += o.Bytes
	s.Hits += o.Hits
	s.Skipped += o.Skipped
	s.Failed += o.Failed
	if o.lastErr != nil {
		s.lastErr = o.lastErr
	}
}

// Err summarises the file failures so far, or returns nil if there
// were none.
func (s *Stats) Err() error {
	switch s.Failed {
	case 0:
		return nil
	case 1:
		return fmt.Errorf("failed to scan 1 file: %w", s.lastErr)
	}
	return fmt.Errorf("failed to scan %d files: last error: %w", s.Failed, s.lastErr)
}
