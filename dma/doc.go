// Package dma provides the physically-contiguous, zeroable memory blocks the
// OHCI core allocates the HCCA and endpoint descriptors from.
//
// A [Block] is mixed-ownership memory: the driver owns it exclusively for
// linking purposes, but the controller inspects (and, for TDs not modeled by
// this core, writes) the same bytes over DMA. A [Block] exposes its bytes
// for the driver to mutate and a 32-bit physical address for the driver to
// publish to the controller; nothing in this package aliases those bytes
// through a second mutable reference.
package dma
