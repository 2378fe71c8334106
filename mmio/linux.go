//go:build linux

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ardnew/ohci/pkg"
)

// Linux is a [Window] backed by a real memory-mapped register block,
// obtained via golang.org/x/sys/unix.Mmap over a PCI BAR resource file (or
// /dev/mem, for platforms that expose registers that way).
type Linux struct {
	file *os.File
	data []byte
}

// OpenLinux maps size bytes of path starting at offset as the controller's
// register window. path is typically a sysfs PCI resource file
// (/sys/bus/pci/devices/.../resource0) or /dev/mem.
func OpenLinux(path string, offset int64, size int) (*Linux, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), offset, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmio: mmap %s: %w", path, err)
	}

	pkg.LogDebug(pkg.ComponentMMIO, "mapped register window",
		"path", path, "offset", offset, "size", size)

	return &Linux{file: f, data: data}, nil
}

// ReadL implements [Window]. The load is atomic so it cannot be reordered or
// torn with respect to concurrent writes from this process or the
// controller's DMA engine.
func (l *Linux) ReadL(offset uint32) uint32 {
	return atomic.LoadUint32(l.word(offset))
}

// WriteL implements [Window].
func (l *Linux) WriteL(offset uint32, value uint32) {
	atomic.StoreUint32(l.word(offset), value)
}

// Size implements [Window].
func (l *Linux) Size() int {
	return len(l.data)
}

// Prefault implements [Prefaultable]. It advises the kernel to fault in the
// page backing offset immediately via MADV_WILLNEED, so a later access from
// interrupt context — which cannot tolerate a page fault — finds the page
// already resident.
func (l *Linux) Prefault(offset uint32) error {
	pageStart := uintptr(offset) &^ (uintptr(os.Getpagesize()) - 1)
	pageEnd := pageStart + uintptr(os.Getpagesize())
	if pageEnd > uintptr(len(l.data)) {
		pageEnd = uintptr(len(l.data))
	}
	if err := unix.Madvise(l.data[pageStart:pageEnd], unix.MADV_WILLNEED); err != nil {
		return fmt.Errorf("mmio: madvise: %w", err)
	}
	return nil
}

// Addr implements [Addressable].
func (l *Linux) Addr(offset uint32) uintptr {
	return uintptr(unsafe.Pointer(l.word(offset)))
}

func (l *Linux) word(offset uint32) *uint32 {
	return (*uint32)(unsafe.Pointer(&l.data[offset]))
}

// Close unmaps the register window and closes the backing file.
func (l *Linux) Close() error {
	if err := unix.Munmap(l.data); err != nil {
		return fmt.Errorf("mmio: munmap: %w", err)
	}
	return l.file.Close()
}
