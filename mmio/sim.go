package mmio

import (
	"sync/atomic"
	"unsafe"
)

// DefaultSimSize is the size, in bytes, of the register block a [Sim]
// allocates when none is requested — large enough to hold every OHCI
// operational register plus fifteen root-hub port-status registers and the
// legacy emulation register beyond them.
const DefaultSimSize = 0x200

// Sim is a software-only [Window] used in tests. It behaves like a real
// OHCI register block without any hardware: reads and writes are ordinary
// atomic loads/stores against a backing array, and a test can poke or
// inspect any register directly via [Sim.Poke]/[Sim.Peek] to script
// controller-side behavior (e.g. self-clearing HCR, or a controller that
// "completes" a batch between two reads).
type Sim struct {
	words []atomic.Uint32
}

// NewSim allocates a simulated register window of size bytes, rounded up to
// a whole number of 32-bit words. A size smaller than [DefaultSimSize]
// (including 0) is raised to DefaultSimSize, so the window always holds the
// full operational register set.
func NewSim(size int) *Sim {
	if size < DefaultSimSize {
		size = DefaultSimSize
	}
	return &Sim{words: make([]atomic.Uint32, (size+3)/4)}
}

// ReadL implements [Window].
func (s *Sim) ReadL(offset uint32) uint32 {
	return s.words[offset/4].Load()
}

// WriteL implements [Window].
func (s *Sim) WriteL(offset uint32, value uint32) {
	s.words[offset/4].Store(value)
}

// Size implements [Window].
func (s *Sim) Size() int {
	return len(s.words) * 4
}

// Addr implements [Addressable]. The returned address is only valid for the
// lifetime of the Sim and is meaningful only to code that dereferences it
// through the same process's memory, exactly like a real mmap'd register
// address.
func (s *Sim) Addr(offset uint32) uintptr {
	return uintptr(unsafe.Pointer(&s.words[offset/4]))
}

// Poke sets a register directly, bypassing any semantics the caller of
// ReadL/WriteL would normally go through. Intended for tests to script
// controller-side writes (e.g. simulate the controller self-clearing HCR).
func (s *Sim) Poke(offset uint32, value uint32) {
	s.words[offset/4].Store(value)
}

// Peek reads a register directly. Equivalent to ReadL; provided for
// symmetry with Poke so tests read naturally.
func (s *Sim) Peek(offset uint32) uint32 {
	return s.words[offset/4].Load()
}
