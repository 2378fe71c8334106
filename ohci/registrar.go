package ohci

import (
	"fmt"

	"github.com/ardnew/ohci/pkg"
)

// MaxPeriodicBandwidth is the number of periodic (isochronous/interrupt)
// endpoint slots this core will admit before refusing further registration.
// The real OHCI bandwidth-reclamation algorithm accounts bytes-per-frame
// against the 90% periodic-start budget; this core tracks slot count as a
// conservative stand-in, matching the boundary test named by the testable
// properties (a 33rd periodic endpoint against a 32-slot budget fails).
const MaxPeriodicBandwidth = 32

// epKey identifies a logical endpoint by the tuple the registrar indexes
// on.
type epKey struct {
	address  int
	endpoint int
	dir      Direction
}

func (k epKey) String() string {
	return fmt.Sprintf("addr=%d ep=%d dir=%d", k.address, k.endpoint, k.dir)
}

// Endpoint is the logical record the registrar binds to a hardware ED.
type Endpoint struct {
	Address       int
	Number        int
	Direction     Direction
	Speed         Speed
	MaxPacketSize uint16
	Type          TransferType

	ed *ed
}

// registrar binds (address, endpoint, direction) tuples to endpoint
// descriptors and tracks periodic bandwidth consumption. It holds no
// hardware state of its own beyond bookkeeping; list mutation is the
// caller's responsibility.
type registrar struct {
	byKey        map[epKey]*Endpoint
	periodicUsed int
}

func newRegistrar() *registrar {
	return &registrar{byKey: make(map[epKey]*Endpoint)}
}

// register records ep, rejecting periodic registrations that would exceed
// MaxPeriodicBandwidth. It does not touch hardware; the caller links ep.ed
// into the appropriate list only after this succeeds.
func (r *registrar) register(ep *Endpoint) error {
	key := epKey{ep.Address, ep.Number, ep.Direction}
	if _, exists := r.byKey[key]; exists {
		return fmt.Errorf("%w: %s already registered", pkg.ErrOverflow, key)
	}

	periodic := ep.Type == TransferInterrupt || ep.Type == TransferIsochronous
	if periodic && r.periodicUsed >= MaxPeriodicBandwidth {
		return fmt.Errorf("%w: periodic budget %d exhausted", pkg.ErrBandwidthExhausted, MaxPeriodicBandwidth)
	}

	r.byKey[key] = ep
	if periodic {
		r.periodicUsed++
	}
	return nil
}

// unregister removes the tuple, returning ErrNoSuchEndpoint if it was never
// registered.
func (r *registrar) unregister(address, endpoint int, dir Direction) error {
	key := epKey{address, endpoint, dir}
	ep, ok := r.byKey[key]
	if !ok {
		return pkg.ErrNoSuchEndpoint
	}
	delete(r.byKey, key)
	if ep.Type == TransferInterrupt || ep.Type == TransferIsochronous {
		r.periodicUsed--
	}
	return nil
}

// get returns the endpoint bound to the tuple, or ErrNoSuchEndpoint.
func (r *registrar) get(address, endpoint int, dir Direction) (*Endpoint, error) {
	ep, ok := r.byKey[epKey{address, endpoint, dir}]
	if !ok {
		return nil, pkg.ErrNoSuchEndpoint
	}
	return ep, nil
}
