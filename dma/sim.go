package dma

import (
	"sync"

	"github.com/ardnew/ohci/pkg"
)

const physAlign = 16

// Sim is a software-only [Allocator] used in tests. It hands out ordinary Go
// heap memory and assigns each block a fake, monotonically increasing
// 32-bit "physical" address, so EDs and the HCCA can publish and follow
// pointers exactly as they would against a real DMA pool. Addresses start
// above 0, because a 0 next-pointer terminates an ED chain.
type Sim struct {
	mu       sync.Mutex
	nextPhys uint32
	limit    int // maximum live blocks; 0 means unlimited
	live     int
}

// NewSim creates a simulated allocator. limit caps the number of
// simultaneously live blocks; pass 0 for no cap. A nonzero limit lets tests
// exercise the out-of-memory error path deterministically.
func NewSim(limit int) *Sim {
	return &Sim{limit: limit, nextPhys: physAlign}
}

// Alloc implements [Allocator].
func (s *Sim) Alloc(size int) (Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limit > 0 && s.live >= s.limit {
		return nil, pkg.ErrOutOfMemory
	}

	b := &simBlock{virt: make([]byte, size), phys: s.nextPhys}
	s.nextPhys += align(uint32(size), physAlign)
	s.live++
	return b, nil
}

// Free implements [Allocator].
func (s *Sim) Free(Block) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live > 0 {
		s.live--
	}
}

func align(n, to uint32) uint32 {
	if r := n % to; r != 0 {
		n += to - r
	}
	return n
}

type simBlock struct {
	virt []byte
	phys uint32
}

func (b *simBlock) Virt() []byte { return b.virt }
func (b *simBlock) Phys() uint32 { return b.phys }
