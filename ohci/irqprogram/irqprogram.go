// Package irqprogram builds the small fixed sequence of abstract
// operations the kernel interprets in interrupt context to filter spurious
// interrupts and acknowledge handled bits before waking the driver task:
// read the status register, test it against the handled mask, skip the
// next instruction (the write-back) if nothing matched, write the value back
// to acknowledge, accept and wake the driver.
package irqprogram

import (
	"fmt"

	"github.com/ardnew/ohci/mmio"
	"github.com/ardnew/ohci/pkg"
)

// Op identifies one kind of instruction the kernel-side interpreter
// understands.
type Op uint8

const (
	OpReadL    Op = iota // read a 32-bit register
	OpBitTest            // AND the last-read value against a mask
	OpPredicate          // skip the next instruction if the last test was zero
	OpWriteL             // write a value back to a register (write-clear ack)
	OpAccept             // hand the latched value to the driver task
)

func (o Op) String() string {
	switch o {
	case OpReadL:
		return "read32"
	case OpBitTest:
		return "btest"
	case OpPredicate:
		return "predicate"
	case OpWriteL:
		return "write32"
	case OpAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// Instruction is one step of the program. Addr is meaningful only for
// OpReadL and OpWriteL; Value carries the test mask for OpBitTest.
type Instruction struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

// Program is the fixed five-instruction sequence described in the package
// doc comment.
type Program struct {
	Instructions []Instruction
}

// Len is the fixed instruction count of the program this package builds.
// Callers use it to size their output buffer before calling Build.
func Len() int { return 5 }

// Build constructs the program against the interrupt-status register at
// statusOffset within w, filtering on mask. bufCap is the capacity of the
// caller's output buffer; if it is smaller than Len(), Build returns
// ErrOverflow and never touches the register window, so no mapping is
// created for a program that cannot be delivered.
//
// Build faults the target register's page into residency before filling in
// instruction addresses. In the reference implementation this exists
// because the program later runs in a context that forbids page faults, so
// the mapping must already be resident by the time it does. On a window
// backed by real mmap'd memory ([mmio.Prefaultable]), Build asks the kernel
// to fault the page in directly; otherwise (e.g. [mmio.Sim], whose backing
// is already-resident Go memory) a plain read stands in, which also serves
// as a liveness and size check: a window too small to hold the status
// register, or one that errors on first touch, fails fast here rather than
// inside the kernel-interpreted program.
func Build(w mmio.Addressable, statusOffset uint32, mask uint32, bufCap int) (*Program, error) {
	if bufCap < Len() {
		return nil, pkg.ErrOverflow
	}
	if int(statusOffset)+4 > w.Size() {
		return nil, pkg.ErrOverflow
	}

	if pf, ok := w.(mmio.Prefaultable); ok {
		if err := pf.Prefault(statusOffset); err != nil {
			return nil, fmt.Errorf("irqprogram: %w", err)
		}
	} else {
		_ = w.ReadL(statusOffset)
	}
	addr := w.Addr(statusOffset)

	return &Program{Instructions: []Instruction{
		{Op: OpReadL, Addr: addr},
		{Op: OpBitTest, Value: mask},
		{Op: OpPredicate},
		{Op: OpWriteL, Addr: addr},
		{Op: OpAccept},
	}}, nil
}
