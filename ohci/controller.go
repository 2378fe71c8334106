package ohci

import (
	"sync"

	"github.com/ardnew/ohci/address"
	"github.com/ardnew/ohci/dma"
	"github.com/ardnew/ohci/mmio"
	"github.com/ardnew/ohci/pkg"
)

// Controller is the root object of the OHCI core: the mapped register
// window, the HCCA, the four transfer-type endpoint lists, the pending-
// batch set, and the collaborators the core calls through. One Controller
// corresponds to one physical (or emulated) host controller instance.
type Controller struct {
	regs  regs
	alloc dma.Allocator
	addrs address.Allocator

	hcca  *hcca
	lists [4]*edList // indexed by TransferType
	reg   *registrar

	pending []Batch

	mu sync.Mutex

	rootHub RootHub
}

// New builds a Controller over the given register window and DMA
// allocator. It allocates and wires the HCCA and the four endpoint lists
// but does not touch hardware beyond the allocations themselves; call
// [Controller.GainControl] and then [Controller.Start] to bring the
// controller up.
func New(w mmio.Window, alloc dma.Allocator, addrs address.Allocator) (*Controller, error) {
	c := &Controller{
		regs:  regs{w: w},
		alloc: alloc,
		addrs: addrs,
		reg:   newRegistrar(),
	}

	h, err := newHCCA(alloc)
	if err != nil {
		return nil, err
	}
	c.hcca = h

	for tt := TransferControl; tt <= TransferIsochronous; tt++ {
		l, err := newEDList(alloc, tt)
		if err != nil {
			return nil, err
		}
		c.lists[tt] = l
	}

	// The interrupt list chains into the isochronous list so a single
	// periodic traversal covers both; every HCCA slot anchors at the
	// interrupt list's head.
	c.lists[TransferInterrupt].chainNext(c.lists[TransferIsochronous])
	c.hcca.setInterruptHead(c.lists[TransferInterrupt].headPhys())

	pkg.LogInfo(pkg.ComponentController, "controller memory initialized",
		"hcca", c.hcca.phys())

	return c, nil
}

// listFor returns the endpoint list matching a transfer type.
func (c *Controller) listFor(tt TransferType) *edList {
	return c.lists[tt]
}

// enableBitFor returns the control-register list-enable bit(s) guarding tt.
// Isochronous and interrupt insertions toggle the combined pair because
// both schedules are walked from the same chained traversal.
func enableBitFor(tt TransferType) uint32 {
	switch tt {
	case TransferControl:
		return ControlCLE
	case TransferBulk:
		return ControlBLE
	case TransferInterrupt, TransferIsochronous:
		return ControlPLE | ControlIE
	default:
		return 0
	}
}

// AddEndpoint registers a logical endpoint and links its descriptor into
// the list matching its transfer type, following the enable-toggle
// protocol: clear the list's enable bit, mutate, for control/bulk zero the
// current register so the controller re-reads the head, then re-set the
// bit.
func (c *Controller) AddEndpoint(ep *Endpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := newED(c.alloc)
	if err != nil {
		return err
	}
	e.configure(ep.Address, ep.Number, ep.Direction, ep.Speed, ep.MaxPacketSize)
	ep.ed = e

	if err := c.reg.register(ep); err != nil {
		// Registration rejected the endpoint (duplicate tuple, or periodic
		// bandwidth exhausted): tear down the descriptor we just allocated
		// rather than leaking it, matching hc_add_endpoint's teardown on
		// the same path.
		c.alloc.Free(e.block)
		ep.ed = nil
		return err
	}

	bit := enableBitFor(ep.Type)
	list := c.listFor(ep.Type)

	ctl := c.regs.control()
	c.regs.setControl(ctl &^ bit)

	list.insert(e)

	if ep.Type == TransferControl {
		c.regs.setControlCurrent(0)
	} else if ep.Type == TransferBulk {
		c.regs.setBulkCurrent(0)
	}

	c.regs.setControl(ctl | bit)

	pkg.LogInfo(pkg.ComponentEndpointList, "endpoint added",
		"address", ep.Address, "endpoint", ep.Number, "type", ep.Type)
	return nil
}

// RemoveEndpoint unlinks and unregisters a previously added endpoint,
// following the same enable-toggle protocol as AddEndpoint. If the logical
// endpoint has no hardware descriptor (shouldn't happen via AddEndpoint,
// but preserved for partially constructed callers), it logs a warning and
// only unregisters.
func (c *Controller) RemoveEndpoint(address, number int, dir Direction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ep, err := c.reg.get(address, number, dir)
	if err != nil {
		return err
	}

	if ep.ed == nil {
		pkg.LogWarn(pkg.ComponentEndpointList, "removing endpoint with no hardware descriptor",
			"address", address, "endpoint", number)
		return c.reg.unregister(address, number, dir)
	}

	bit := enableBitFor(ep.Type)
	list := c.listFor(ep.Type)

	ctl := c.regs.control()
	c.regs.setControl(ctl &^ bit)

	list.remove(ep.ed)

	if ep.Type == TransferControl {
		c.regs.setControlCurrent(0)
	} else if ep.Type == TransferBulk {
		c.regs.setBulkCurrent(0)
	}

	c.regs.setControl(ctl | bit)

	pkg.LogInfo(pkg.ComponentEndpointList, "endpoint removed",
		"address", address, "endpoint", number)
	return c.reg.unregister(address, number, dir)
}

// Endpoint looks up a registered endpoint by its (address, endpoint,
// direction) tuple.
func (c *Controller) Endpoint(address, number int, dir Direction) (*Endpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reg.get(address, number, dir)
}
