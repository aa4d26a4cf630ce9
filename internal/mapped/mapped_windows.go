//go:build windows

package mapped

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func (m *File) mmap(size int) error {
	h, err := windows.CreateFileMapping(windows.Handle(m.f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return err
	}
	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	// The view keeps the mapping alive.
	_ = windows.CloseHandle(h)
	if err != nil {
		return err
	}
	m.data = unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
	m.unmap = func(b []byte) error {
		return windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&b[0])))
	}
	return nil
}
