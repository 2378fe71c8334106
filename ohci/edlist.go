package ohci

import "github.com/ardnew/ohci/dma"

// TransferType identifies which of the four OHCI endpoint lists an
// endpoint belongs to.
type TransferType uint8

const (
	TransferControl     TransferType = 0
	TransferBulk        TransferType = 1
	TransferInterrupt   TransferType = 2
	TransferIsochronous TransferType = 3
)

func (t TransferType) String() string {
	switch t {
	case TransferControl:
		return "control"
	case TransferBulk:
		return "bulk"
	case TransferInterrupt:
		return "interrupt"
	case TransferIsochronous:
		return "isochronous"
	default:
		return "unknown"
	}
}

// edList is one of the four per-transfer-type endpoint lists: a sentinel
// head ED permanently linked into the hardware chain, with an ordered
// logical sequence of real EDs appended after it. The physical address of
// the sentinel is what gets published to the controller (the list-head
// register, or an HCCA interrupt slot).
//
// edList itself never touches the enable-bit group of the control
// register; callers (controller.go) are responsible for wrapping mutating
// calls in the enable-toggle protocol.
type edList struct {
	transferType TransferType
	sentinel     *ed
	items        []*ed

	// chained is the list this list's tail links into once its own items
	// are exhausted, or nil if the chain terminates here. Only the
	// interrupt list sets this, chaining into the isochronous list.
	chained *edList
}

func newEDList(alloc dma.Allocator, tt TransferType) (*edList, error) {
	sentinel, err := newED(alloc)
	if err != nil {
		return nil, err
	}
	// The sentinel carries no endpoint identity; it exists only to anchor
	// the physical head pointer and terminate the chain.
	sentinel.setNext(0)
	return &edList{transferType: tt, sentinel: sentinel}, nil
}

// headPhys is the physical address exported to the controller as this
// list's head pointer.
func (l *edList) headPhys() uint32 {
	return l.sentinel.phys()
}

// chainNext links this list's tail onto the head of another list, used to
// chain the interrupt list into the isochronous list for periodic
// traversal. Once set, every subsequent insert/remove that empties or
// extends the logical tail relinks through next.headPhys() rather than 0.
func (l *edList) chainNext(next *edList) {
	l.chained = next
	l.relinkTail()
}

// tailPhys is the physical address the last logical item (or the sentinel,
// if the list is empty) should point to: the chained list's head if one was
// set via chainNext, or 0 to terminate the chain.
func (l *edList) tailPhys() uint32 {
	if l.chained == nil {
		return 0
	}
	return l.chained.headPhys()
}

// relinkTail repoints the current last link (sentinel if empty, else the
// last item) at tailPhys. Called after chainNext and after any insert/remove
// that changes what the logical tail is.
func (l *edList) relinkTail() {
	if len(l.items) == 0 {
		l.sentinel.setNext(l.tailPhys())
		return
	}
	l.items[len(l.items)-1].setNext(l.tailPhys())
}

// insert appends e to the logical end of the list and links it into the
// physical chain. The caller must hold the instance guard and must have
// already cleared the list's enable bit.
func (l *edList) insert(e *ed) {
	e.setNext(l.tailPhys())
	if len(l.items) == 0 {
		l.sentinel.setNext(e.phys())
	} else {
		l.items[len(l.items)-1].setNext(e.phys())
	}
	l.items = append(l.items, e)
}

// remove unlinks e from the logical and physical chain. Returns false if e
// was not a member. The caller must hold the instance guard and must have
// already cleared the list's enable bit.
func (l *edList) remove(e *ed) bool {
	idx := -1
	for i, cur := range l.items {
		if cur == e {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	var nextPhys uint32
	if idx+1 < len(l.items) {
		nextPhys = l.items[idx+1].phys()
	} else {
		nextPhys = l.tailPhys()
	}

	if idx == 0 {
		l.sentinel.setNext(nextPhys)
	} else {
		l.items[idx-1].setNext(nextPhys)
	}

	l.items = append(l.items[:idx], l.items[idx+1:]...)
	return true
}

// walk returns the physical addresses reachable by following next pointers
// from the head pointer, in traversal order, sentinel excluded. It stops at
// the first address that is not one of this list's own items (0, or the
// chained list's head), exactly like the hardware traversal a test double
// cannot otherwise observe. Used by tests asserting schedule reachability.
func (l *edList) walk() []uint32 {
	byPhys := make(map[uint32]*ed, len(l.items))
	for _, e := range l.items {
		byPhys[e.phys()] = e
	}

	out := make([]uint32, 0, len(l.items))
	cur := l.sentinel.next()
	for {
		e, ok := byPhys[cur]
		if !ok {
			break
		}
		out = append(out, cur)
		cur = e.next()
	}
	return out
}
