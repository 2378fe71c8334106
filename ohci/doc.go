// Package ohci implements the core of an Open Host Controller Interface
// (OHCI) USB 1.1 host controller driver: gaining control of the hardware
// from whatever firmware owns it, programming the memory-resident transfer
// schedule, servicing controller interrupts, and completing in-flight
// transfer batches.
//
// The controller communicates almost entirely through shared DMA memory:
// software writes descriptor chains, the controller walks them on its own
// clock, and software learns of completions through the interrupt-status
// register and the Host Controller Communication Area (HCCA). The package
// does not implement a USB device stack, enumeration, or the root-hub port
// state machine; those are collaborators consumed through the interfaces in
// collaborators.go.
//
// A [Controller] is built with [New] over a [mmio.Window] and a
// [dma.Allocator], brought under driver control with [Controller.GainControl],
// started with [Controller.Start], and then serviced either by routing
// platform interrupts into [Controller.Interrupt] or by running
// [Controller.RunPoll] as a fallback.
package ohci
