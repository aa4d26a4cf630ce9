// Package scan drives the search for Base58Check tokens in files.
//
// For every active token.Spec, in registration order, the buffer is
// searched with a scanner.Matcher and each candidate is checked with
// base58check. Candidates that verify are emitted to a Sink as Hits in
// discovery order.
package scan

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"btcscan/internal/base58check"
	"btcscan/internal/mapped"
	"btcscan/internal/scanner"
	"btcscan/internal/token"
)

// ErrTooShort is returned for files shorter than token.MinFileSize.
var ErrTooShort = errors.New("file too short")

// Hit is a verified token.
type Hit struct {
	Text    string
	Path    string
	Offset  int64
	Type    string
	Unicode bool
}

// Sink receives hits. A Sink is only ever called from one goroutine
// at a time.
type Sink interface {
	Emit(Hit) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Hit) error

// Emit calls f.
func (f SinkFunc) Emit(h Hit) error { return f(h) }

// SinkError wraps a failure of the Sink. Unlike file errors it stops a
// Run.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string { return "emit hit: " + e.Err.Error() }
func (e *SinkError) Unwrap() error { return e.Err }

// Progress is told what the scanner is doing. Implementations used
// with Run and more than one worker must be safe for concurrent use.
type Progress interface {
	StartFile(path string, size int64)
	StartSpec(path string, spec token.Spec)
	SkipFile(path string, err error)
}

type nopProgress struct{}

func (nopProgress) StartFile(string, int64)      {}
func (nopProgress) StartSpec(string, token.Spec) {}
func (nopProgress) SkipFile(string, error)       {}

// Scanner searches files for the tokens of a fixed set of Specs.
type Scanner struct {
	specs    []token.Spec
	sink     Sink
	progress Progress
	log      *logrus.Entry
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithProgress sets the Progress reporter.
func WithProgress(p Progress) Option {
	return func(s *Scanner) { s.progress = p }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Scanner) { s.log = logrus.NewEntry(l) }
}

// New returns a Scanner searching for specs and emitting to sink.
func New(specs []token.Spec, sink Sink, opts ...Option) *Scanner {
	discard := logrus.New()
	discard.Out = io.Discard
	s := &Scanner{
		specs:    specs,
		sink:     sink,
		progress: nopProgress{},
		log:      logrus.NewEntry(discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForMode returns a Scanner searching for token.Active(mode).
func ForMode(mode token.Mode, sink Sink, opts ...Option) *Scanner {
	return New(token.Active(mode), sink, opts...)
}

// Specs returns the Specs searched for.
func (s *Scanner) Specs() []token.Spec {
	return s.specs
}

// with returns a copy of s emitting to sink.
func (s *Scanner) with(sink Sink) *Scanner {
	c := *s
	c.sink = sink
	return &c
}

// ScanBuffer searches buf, emitting a Hit naming path for every
// verified token. It returns the number of hits emitted.
func (s *Scanner) ScanBuffer(ctx context.Context, path string, buf []byte) (int64, error) {
	var hits int64
	trace := s.log.Logger.IsLevelEnabled(logrus.TraceLevel)
	for _, spec := range s.specs {
		if err := ctx.Err(); err != nil {
			return hits, err
		}
		s.progress.StartSpec(path, spec)
		s.log.WithFields(logrus.Fields{
			"file":    path,
			"type":    spec.Name,
			"unicode": spec.Unicode,
		}).Debug("searching")

		m := scanner.New(buf, spec)
		for m.Next() {
			match := m.Match()
			result := base58check.Classify(match.Text, spec.DecodedLen)
			if result != base58check.Valid {
				if trace {
					s.log.WithFields(logrus.Fields{
						"file":   path,
						"offset": match.Offset,
						"reason": result,
					}).Trace("rejected candidate")
				}
				continue
			}
			hit := Hit{
				Text:    match.Text,
				Path:    path,
				Offset:  match.Offset,
				Type:    spec.Name,
				Unicode: spec.Unicode,
			}
			if err := s.sink.Emit(hit); err != nil {
				return hits, &SinkError{Err: err}
			}
			hits++
		}
	}
	return hits, nil
}

// ScanFile maps the file at path and searches it, adding to stats.
//
// Files shorter than token.MinFileSize are not scanned and give
// ErrTooShort. Missing or unreadable files give the underlying error.
// Either way the caller may carry on with the next file; only a
// *SinkError means the output is broken.
func (s *Scanner) ScanFile(ctx context.Context, path string, stats *Stats) (err error) {
	log := s.log.WithField("file", path)
	defer func() {
		if err == nil {
			return
		}
		var sinkErr *SinkError
		switch {
		case errors.As(err, &sinkErr), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return
		case errors.Is(err, ErrTooShort):
			stats.Skipped++
			log.Info("file too short")
		default:
			stats.fail(err)
			log.WithError(err).Warn("skipping file")
		}
		s.progress.SkipFile(path, err)
	}()

	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	size := fi.Size()
	s.progress.StartFile(path, size)
	if size < token.MinFileSize {
		return errors.Wrap(ErrTooShort, path)
	}
	stats.Files++
	stats.Bytes += size

	m, err := mapped.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil {
			log.WithError(cerr).Warn("close failed")
		}
	}()

	hits, err := s.ScanBuffer(ctx, path, m.Bytes())
	stats.Hits += hits
	return err
}
