// Package mapped gives read-only random access to the contents of a
// file without reading it into the heap.
//
// On systems with mmap the file is mapped into memory; elsewhere it is
// read in full.
package mapped

import (
	"os"

	"github.com/pkg/errors"
)

// File is an open, mapped file. The slice returned by Bytes is only
// valid until Close.
type File struct {
	f     *os.File
	data  []byte
	unmap func([]byte) error
}

// Open maps the named file read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "mapped: stat %s", path)
	}
	size := fi.Size()
	if size == 0 {
		return &File{f: f}, nil
	}
	if int64(int(size)) != size {
		_ = f.Close()
		return nil, errors.Errorf("mapped: %s is too large to map (%d bytes)", path, size)
	}
	m := &File{f: f}
	if err := m.mmap(int(size)); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "mapped: map %s", path)
	}
	return m, nil
}

// Bytes returns the file contents.
func (m *File) Bytes() []byte {
	return m.data
}

// Size returns the length of the file in bytes.
func (m *File) Size() int64 {
	return int64(len(m.data))
}

// Name returns the path the file was opened with.
func (m *File) Name() string {
	return m.f.Name()
}

// Close unmaps and closes the file. It is safe to call more than once.
func (m *File) Close() error {
	if m.f == nil {
		return nil
	}
	var err error
	if m.data != nil && m.unmap != nil {
		err = m.unmap(m.data)
	}
	m.data = nil
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	m.f = nil
	return err
}
