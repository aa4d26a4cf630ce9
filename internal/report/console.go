package report

import (
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"btcscan/internal/scan"
	"btcscan/internal/token"
)

const lineWidth = 73

var (
	fileColor  = color.New(color.FgCyan)
	specColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	hitColor   = color.New(color.FgGreen, color.Bold)
)

// Console is a scan.Progress printing a status line that is rewritten
// in place, the way a terminal progress line is.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) clear() {
	fmt.Fprint(c.out, "\r"+strings.Repeat(" ", lineWidth)+"\r")
}

// StartFile implements scan.Progress.
func (c *Console) StartFile(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	fmt.Fprint(c.out, "Scanning: ")
	fileColor.Fprint(c.out, printable(path))
	fmt.Fprintf(c.out, " (%d bytes)\n", size)
}

// StartSpec implements scan.Progress.
func (c *Console) StartSpec(path string, spec token.Spec) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	fmt.Fprint(c.out, "Searching for: ")
	specColor.Fprint(c.out, spec.String())
}

// SkipFile implements scan.Progress.
func (c *Console) SkipFile(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	switch {
	case errors.Is(err, scan.ErrTooShort):
		fmt.Fprintln(c.out, "File too short")
	case errors.Is(err, fs.ErrNotExist):
		errorColor.Fprintf(c.out, "%s : Not found.\n", printable(path))
	case errors.Is(err, fs.ErrPermission):
		errorColor.Fprintf(c.out, "PermissionError: %v\n", err)
	default:
		errorColor.Fprintf(c.out, "Error: %v\n", err)
	}
}

// Done clears the status line.
func (c *Console) Done() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// printable replaces characters a terminal cannot show.
func printable(path string) string {
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || r < 0x20 || r == 0x7f {
			return '?'
		}
		return r
	}, path)
}

// WriteSummary prints the counters of a finished run.
func WriteSummary(w io.Writer, stats scan.Stats, elapsed time.Duration) {
	fmt.Fprintf(w, "\n%d files examined\n", stats.Files)
	hitColor.Fprintf(w, "%d Base58Check matches found\n", stats.Hits)
	fmt.Fprintf(w, "%s bytes examined (%s)\n", humanize.Comma(stats.Bytes), humanize.Bytes(uint64(stats.Bytes)))
	if stats.Skipped > 0 {
		fmt.Fprintf(w, "%d files too short to scan\n", stats.Skipped)
	}
	if stats.Failed > 0 {
		errorColor.Fprintf(w, "%d files could not be read\n", stats.Failed)
	}
	fmt.Fprintf(w, "%.2f seconds processing time\n", elapsed.Seconds())
	if elapsed > 100*time.Millisecond {
		rate := float64(stats.Bytes) / elapsed.Seconds()
		fmt.Fprintf(w, "Processed %s/s\n", humanize.Bytes(uint64(rate)))
	}
	fmt.Fprintln(w)
}
