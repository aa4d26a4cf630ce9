// Fallback for systems without mmap

//go:build !unix && !windows

package mapped

import "io"

func (m *File) mmap(size int) error {
	data := make([]byte, size)
	if _, err := io.ReadFull(m.f, data); err != nil {
		return err
	}
	m.data = data
	return nil
}
