//go:build unix

package mapped

import (
	"golang.org/x/sys/unix"
)

func (m *File) mmap(size int) error {
	data, err := unix.Mmap(int(m.f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	// Scans run front to back.
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
	m.data = data
	m.unmap = unix.Munmap
	return nil
}
