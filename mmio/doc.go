// Package mmio provides the register-window abstraction the OHCI core reads
// and writes through.
//
// A [Window] is a process-visible mapping of a device's memory-mapped
// registers. All accesses go through [Window.ReadL]/[Window.WriteL], which
// the real (Linux) backing implements with ordered, uncoalesced loads and
// stores so the compiler and CPU cannot reorder or merge accesses to
// registers the controller is concurrently reading or writing.
//
// [Sim] is a software-only register window used in tests: it behaves like a
// real OHCI register block without any hardware, mirroring the way the
// reference USB stack this package is modeled on stands in a FIFO-backed bus
// for real silicon in its own tests.
package mmio
