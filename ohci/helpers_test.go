package ohci

import (
	"github.com/ardnew/ohci/address"
	"github.com/ardnew/ohci/dma"
	"github.com/ardnew/ohci/mmio"
)

// newTestController builds a Controller over a fresh Sim register window
// and a fresh Sim DMA allocator, convenient for every test in this package.
func newTestController() (*Controller, *mmio.Sim, *dma.Sim) {
	w := mmio.NewSim(mmio.DefaultSimSize)
	d := dma.NewSim(0)
	a := address.NewFake()

	c, err := New(w, d, a)
	if err != nil {
		panic(err)
	}
	return c, w, d
}

// hcrSelfClearingWindow wraps a [mmio.Sim] and plays the controller's part
// in a host-controller reset: a write to the command-status register is
// stored with HCR already cleared, as if the reset completed at once. A bare
// Sim is plain memory and would leave HCR set, so Start would never return.
type hcrSelfClearingWindow struct {
	*mmio.Sim
}

func (w hcrSelfClearingWindow) WriteL(offset uint32, value uint32) {
	if offset == RegCommandStatus {
		value &^= CmdStatusHCR
	}
	w.Sim.WriteL(offset, value)
}

// newStartableTestController is newTestController over a window whose HCR
// self-clears, for tests that run Start.
func newStartableTestController() (*Controller, hcrSelfClearingWindow) {
	w := hcrSelfClearingWindow{Sim: mmio.NewSim(mmio.DefaultSimSize)}
	c, err := New(w, dma.NewSim(0), address.NewFake())
	if err != nil {
		panic(err)
	}
	return c, w
}

// fakeBatch is a minimal [Batch] for exercising the scheduler and
// interrupt-dispatch paths without a real transfer-descriptor layout.
type fakeBatch struct {
	addr      int
	ep        int
	dir       Direction
	complete  bool
	committed bool
	finished  int
}

func (b *fakeBatch) Commit()            { b.committed = true }
func (b *fakeBatch) IsComplete() bool   { return b.complete }
func (b *fakeBatch) Finish()            { b.finished++ }
func (b *fakeBatch) TargetAddress() int { return b.addr }
func (b *fakeBatch) Endpoint() (address, number int, dir Direction) {
	return b.addr, b.ep, b.dir
}

// fakeRootHub is a minimal [RootHub] recording whether it was initialized
// and invoked.
type fakeRootHub struct {
	address    int
	initCalled bool
	interrupts int
	requests   []Batch
}

func (h *fakeRootHub) Init(mmio.Window)   { h.initCalled = true }
func (h *fakeRootHub) Interrupt()         { h.interrupts++ }
func (h *fakeRootHub) Address() int       { return h.address }
func (h *fakeRootHub) Request(b Batch) error {
	h.requests = append(h.requests, b)
	return nil
}
