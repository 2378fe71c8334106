package ohci

import (
	"encoding/binary"

	"github.com/ardnew/ohci/dma"
)

// edSize is the hardware size of an OHCI endpoint descriptor: four 32-bit
// words.
const edSize = 16

// Endpoint directions, matching the 2-bit Direction field of word 0 of the
// hardware ED (the "from TD" encodings, 0 and 3, are not modeled — this core
// always pins a direction at registration time).
type Direction uint8

const (
	DirectionOut Direction = 1
	DirectionIn  Direction = 2
)

// Speed mirrors address.Speed for the subset OHCI cares about when building
// an ED: low or full speed (OHCI predates high speed).
type Speed uint8

const (
	SpeedLow  Speed = 0
	SpeedFull Speed = 1
)

const (
	edWord0FunctionAddrMask = 0x7F
	edWord0EndpointShift    = 7
	edWord0EndpointMask     = 0xF << edWord0EndpointShift
	edWord0DirectionShift   = 11
	edWord0DirectionMask    = 0x3 << edWord0DirectionShift
	edWord0SpeedBit         = 1 << 13
	edWord0SkipBit          = 1 << 14
	edWord0FormatBit        = 1 << 15
	edWord0MPSShift         = 16
	edWord0MPSMask          = 0x7FF << edWord0MPSShift

	edWord2HaltedBit      = 1 << 0
	edWord2ToggleCarryBit = 1 << 1
	edPointerMask         = ^uint32(0xF) // physical ED/TD pointers are 16-byte aligned
)

// ed is the DMA-coherent endpoint descriptor record. It is owned
// exclusively by the [edList] node that holds it; the controller only ever
// reads it (aside from the halted and toggle-carry bits in word 2, and the
// head pointer it advances as it retires TDs).
type ed struct {
	block dma.Block
}

func newED(alloc dma.Allocator) (*ed, error) {
	b, err := alloc.Alloc(edSize)
	if err != nil {
		return nil, err
	}
	return &ed{block: b}, nil
}

func (e *ed) phys() uint32 { return e.block.Phys() }

func (e *ed) word(i int) uint32 {
	v := e.block.Virt()
	return binary.LittleEndian.Uint32(v[i*4 : i*4+4])
}

func (e *ed) setWord(i int, val uint32) {
	v := e.block.Virt()
	binary.LittleEndian.PutUint32(v[i*4:i*4+4], val)
}

// configure populates word 0 with the logical identity of the endpoint this
// descriptor represents.
func (e *ed) configure(address int, endpoint int, dir Direction, speed Speed, maxPacketSize uint16) {
	w0 := uint32(address) & edWord0FunctionAddrMask
	w0 |= (uint32(endpoint) << edWord0EndpointShift) & edWord0EndpointMask
	w0 |= (uint32(dir) << edWord0DirectionShift) & edWord0DirectionMask
	if speed == SpeedLow {
		w0 |= edWord0SpeedBit
	}
	w0 |= (uint32(maxPacketSize) << edWord0MPSShift) & edWord0MPSMask
	e.setWord(0, w0)
}

func (e *ed) setSkip(skip bool) {
	w0 := e.word(0)
	if skip {
		w0 |= edWord0SkipBit
	} else {
		w0 &^= edWord0SkipBit
	}
	e.setWord(0, w0)
}

func (e *ed) skip() bool {
	return e.word(0)&edWord0SkipBit != 0
}

// setNext sets the physical pointer to the next ED in the list, or 0 to
// terminate the chain.
func (e *ed) setNext(phys uint32) {
	e.setWord(3, phys&edPointerMask)
}

func (e *ed) next() uint32 {
	return e.word(3) & edPointerMask
}

// setHead sets the head pointer of the ED's TD queue, preserving the
// halted and toggle-carry bits the controller maintains there.
func (e *ed) setHead(phys uint32) {
	w2 := e.word(2)
	flags := w2 & (edWord2HaltedBit | edWord2ToggleCarryBit)
	e.setWord(2, (phys&edPointerMask)|flags)
}

func (e *ed) head() uint32 {
	return e.word(2) & edPointerMask
}

func (e *ed) halted() bool {
	return e.word(2)&edWord2HaltedBit != 0
}

// setTail sets the tail pointer of the ED's TD queue.
func (e *ed) setTail(phys uint32) {
	e.setWord(1, phys&edPointerMask)
}

func (e *ed) tail() uint32 {
	return e.word(1) & edPointerMask
}
