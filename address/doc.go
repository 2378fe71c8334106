// Package address defines the device-address bookkeeper collaborator the
// OHCI core consumes but does not implement.
//
// The non-goals explicitly exclude the generic USB device-address
// bookkeeper from this core's scope: a real implementation tracks bus-wide
// address allocation, (address, handle) binding, and bandwidth accounting
// across every host controller on a system, not just one OHCI instance.
// This package defines only the narrow [Allocator] interface the core calls
// through, plus [Fake], a minimal in-memory implementation sufficient to
// exercise and test the core in isolation.
package address
