package ohci

import "github.com/ardnew/ohci/mmio"

// RootHub is the collaborator that owns root-hub port emulation: port
// reset, enable, power, and status-change reporting. The core forwards
// batches addressed to the root hub and RHSC interrupts to it unchanged;
// it never inspects port state itself.
type RootHub interface {
	// Init is called once, after Start, with the mapped register window so
	// the root hub can read HcRhDescriptorA/B and port-status registers
	// directly.
	Init(w mmio.Window)

	// Request handles a batch addressed to the root hub's pseudo-device
	// synchronously; it never touches the pending-batch set.
	Request(b Batch) error

	// Interrupt is invoked when the controller raises RHSC.
	Interrupt()

	// Address is the pseudo-address this core should short-circuit to the
	// root hub rather than scheduling through an endpoint list.
	Address() int
}

// Batch is one submitter-defined unit of work bound to an endpoint: a
// queue of transfer descriptors plus a completion callback. The scheduler
// only ever calls through this interface; it has no knowledge of transfer
// descriptor layout.
type Batch interface {
	// Commit links the batch's transfer descriptors into its endpoint's ED
	// queue. Called with the instance guard held.
	Commit()

	// IsComplete reports whether the controller has retired every
	// transfer descriptor in this batch. Called with the instance guard
	// held, typically from the WDH dispatch path.
	IsComplete() bool

	// Finish fires the batch's completion callback. Called with the
	// instance guard held; must be bounded and non-blocking.
	Finish()

	// TargetAddress is the device address this batch is destined for,
	// used to route root-hub batches without walking the registrar.
	TargetAddress() int

	// Endpoint identifies which registered endpoint this batch targets.
	Endpoint() (address, number int, dir Direction)
}
