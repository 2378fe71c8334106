package ohci

import (
	"encoding/binary"

	"github.com/ardnew/ohci/dma"
)

// hccaSize is the fixed size of the Host Controller Communication Area: 32
// interrupt-head pointers, a frame number, a pad, a done-queue head, and
// reserved space, per the OHCI specification.
const hccaSize = 256

const (
	hccaInterruptTableOffset = 0
	hccaInterruptTableSlots  = 32
	hccaFrameNumberOffset    = 128
	hccaPadOffset            = 130
	hccaDoneHeadOffset       = 132
)

// hcca wraps the DMA block backing the Host Controller Communication Area.
// It is owned by the driver but continuously written by the controller:
// the interrupt-head table is populated once at start and then left alone;
// the frame-number and done-head fields are read-only from the driver's
// perspective after that.
type hcca struct {
	block dma.Block
}

func newHCCA(alloc dma.Allocator) (*hcca, error) {
	b, err := alloc.Alloc(hccaSize)
	if err != nil {
		return nil, err
	}
	return &hcca{block: b}, nil
}

func (h *hcca) phys() uint32 {
	return h.block.Phys()
}

// setInterruptHead populates all 32 interrupt-table slots with the physical
// address of the interrupt endpoint list's head ED. Called once, from New;
// at steady state every slot holds the same value.
func (h *hcca) setInterruptHead(phys uint32) {
	v := h.block.Virt()
	for slot := 0; slot < hccaInterruptTableSlots; slot++ {
		off := hccaInterruptTableOffset + slot*4
		binary.LittleEndian.PutUint32(v[off:off+4], phys)
	}
}

// interruptHead returns the table entry, used only by tests asserting
// steady-state HCCA invariants.
func (h *hcca) interruptHead(slot int) uint32 {
	v := h.block.Virt()
	off := hccaInterruptTableOffset + slot*4
	return binary.LittleEndian.Uint32(v[off : off+4])
}

// doneHead returns the done-queue head the controller last wrote. The
// controller may overwrite this field at any time; callers only consult it
// immediately after a WDH interrupt is observed.
func (h *hcca) doneHead() uint32 {
	v := h.block.Virt()
	return binary.LittleEndian.Uint32(v[hccaDoneHeadOffset : hccaDoneHeadOffset+4])
}

func (h *hcca) frameNumber() uint16 {
	v := h.block.Virt()
	return binary.LittleEndian.Uint16(v[hccaFrameNumberOffset : hccaFrameNumberOffset+2])
}
