package ohci

import (
	"fmt"

	"github.com/ardnew/ohci/address"
	"github.com/ardnew/ohci/pkg"
)

// RegisterRootHub allocates an address for the root hub's pseudo-device,
// binds it, registers its control endpoint zero, and wires hub as this
// controller's root-hub collaborator. Every step rolls back its
// predecessors on failure: a failed endpoint-zero registration releases
// the just-allocated address, mirroring the cascading-rollback pattern the
// original ownership-handoff code uses for hub registration, expressed
// here as defers instead of goto-style cleanup.
func (c *Controller) RegisterRootHub(hub RootHub) (err error) {
	addr, aerr := c.addrs.GetFreeAddress(address.Full)
	if aerr != nil {
		return fmt.Errorf("%w: %v", pkg.ErrAddressAllocFailed, aerr)
	}

	rollbackAddr := true
	defer func() {
		if rollbackAddr {
			c.addrs.Release(addr)
		}
	}()

	c.addrs.Bind(addr, hub)

	ep0 := &Endpoint{
		Address:       addr,
		Number:        0,
		Direction:     DirectionOut,
		Speed:         SpeedFull,
		MaxPacketSize: 64,
		Type:          TransferControl,
	}
	if err := c.AddEndpoint(ep0); err != nil {
		return err
	}

	rollbackAddr = false
	c.rootHub = hub
	hub.Init(c.regs.w)

	pkg.LogInfo(pkg.ComponentController, "root hub registered", "address", addr)
	return nil
}
