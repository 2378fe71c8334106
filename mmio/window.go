package mmio

// Window is a process-visible mapping of a device's 32-bit memory-mapped
// registers. Implementations must preserve ordering with respect to DMA
// writes performed by the controller: reads and writes through a Window
// are never reordered or coalesced by the compiler.
//
// Offsets are byte offsets from the start of the mapped register block.
type Window interface {
	// ReadL performs an ordered 32-bit read at the given byte offset.
	ReadL(offset uint32) uint32

	// WriteL performs an ordered 32-bit write at the given byte offset.
	WriteL(offset uint32, value uint32)

	// Size returns the length of the mapped register window in bytes.
	Size() int
}

// Addressable is implemented by windows that can report the virtual address
// of a register, for building the IRQ pseudo-program (§4.2): the kernel-side
// interpreter needs the mapped virtual address of the interrupt-status
// register, not an offset relative to the Window.
type Addressable interface {
	Window

	// Addr returns the virtual address corresponding to the given byte
	// offset within the mapping.
	Addr(offset uint32) uintptr
}

// Prefaultable is implemented by windows whose backing pages may not yet be
// resident in the process (a real mmap'd register block, until first
// touched). [Prefault] brings the page containing offset into residency
// ahead of time, so a later access from a context that cannot tolerate a
// page fault — the IRQ pseudo-program's interpreter — never blocks.
//
// Sim does not implement this: its backing is already-resident Go memory,
// so there is nothing to fault in.
type Prefaultable interface {
	Prefault(offset uint32) error
}
