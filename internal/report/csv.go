// Package report writes scan results: the CSV case file, the console
// progress line and the end of run summary.
package report

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"btcscan/internal/scan"
)

// Header is the first line of every CSV file.
const Header = "Hit,File,Offset,Type,Unicode\n"

// caseTimeLayout is DDMMYYYY-HHMMSS.
const caseTimeLayout = "02012006-150405"

// FormatRecord renders h as one CSV line with every field quoted.
func FormatRecord(h scan.Hit) string {
	unicode := "False"
	if h.Unicode {
		unicode = "True"
	}
	fields := []string{h.Text, h.Path, strconv.FormatInt(h.Offset, 10), h.Type, unicode}
	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
	return b.String()
}

// CSVWriter is a scan.Sink writing hits as CSV records.
type CSVWriter struct {
	mu    sync.Mutex
	w     *bufio.Writer
	count int64
}

// NewCSVWriter writes the header to w and returns the writer.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	c := &CSVWriter{w: bufio.NewWriter(w)}
	if _, err := c.w.WriteString(Header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}
	return c, nil
}

// Emit writes one record.
func (c *CSVWriter) Emit(h scan.Hit) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.w.WriteString(FormatRecord(h)); err != nil {
		return err
	}
	c.count++
	return nil
}

// Count returns the number of records written.
func (c *CSVWriter) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Flush writes any buffered records.
func (c *CSVWriter) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Flush()
}

// CaseFileName names the output file of a case started at t.
func CaseFileName(caseName string, t time.Time) string {
	return caseName + "-" + t.Format(caseTimeLayout) + ".csv"
}

// CaseFile is the CSV file collecting the hits of one run.
type CaseFile struct {
	*CSVWriter
	f    *os.File
	path string
}

// CreateCaseFile creates the case file for caseName in dir.
func CreateCaseFile(dir, caseName string, t time.Time) (*CaseFile, error) {
	path := filepath.Join(dir, CaseFileName(caseName, t))
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create case file")
	}
	w, err := NewCSVWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &CaseFile{CSVWriter: w, f: f, path: path}, nil
}

// Path returns the location of the file.
func (cf *CaseFile) Path() string {
	return cf.path
}

// Close flushes and closes the file. A file without records is removed
// unless keepEmpty is set. kept reports whether the file still exists.
func (cf *CaseFile) Close(keepEmpty bool) (kept bool, err error) {
	err = cf.Flush()
	if cerr := cf.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return true, errors.Wrapf(err, "close case file %s", cf.path)
	}
	if cf.Count() > 0 || keepEmpty {
		return true, nil
	}
	if err := os.Remove(cf.path); err != nil {
		return true, errors.Wrap(err, "remove empty case file")
	}
	return false, nil
}
