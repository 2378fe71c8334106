package address

import (
	"sync"

	"github.com/ardnew/ohci/pkg"
)

// Fake is a minimal in-memory [Allocator] sufficient to exercise the OHCI
// core's handoff, endpoint, and root-hub registration paths in tests. It
// performs a linear scan for a free address, exactly like the reference
// USB stack's own host-side allocateAddress helper.
type Fake struct {
	mu      sync.Mutex
	used    [MaxAddress + 1]bool
	handles [MaxAddress + 1]any
}

// NewFake creates an empty address table.
func NewFake() *Fake {
	return &Fake{}
}

// GetFreeAddress implements [Allocator].
func (f *Fake) GetFreeAddress(Speed) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for a := 1; a <= MaxAddress; a++ {
		if !f.used[a] {
			f.used[a] = true
			return a, nil
		}
	}
	return 0, pkg.ErrAddressAllocFailed
}

// Bind implements [Allocator].
func (f *Fake) Bind(addr int, handle any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr < 1 || addr > MaxAddress {
		return
	}
	f.handles[addr] = handle
}

// Release implements [Allocator].
func (f *Fake) Release(addr int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr < 1 || addr > MaxAddress {
		return
	}
	f.used[addr] = false
	f.handles[addr] = nil
}

// Handle returns the handle bound to addr, or nil if none is bound.
func (f *Fake) Handle(addr int) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if addr < 1 || addr > MaxAddress {
		return nil
	}
	return f.handles[addr]
}
