package ohci

import (
	"errors"
	"testing"

	"github.com/ardnew/ohci/pkg"
)

func TestRegistrarRegisterGetUnregister(t *testing.T) {
	r := newRegistrar()
	ep := &Endpoint{Address: 1, Number: 2, Direction: DirectionIn, Type: TransferBulk}

	if err := r.register(ep); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := r.get(1, 2, DirectionIn)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != ep {
		t.Fatal("get returned a different endpoint")
	}

	if err := r.unregister(1, 2, DirectionIn); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	if _, err := r.get(1, 2, DirectionIn); !errors.Is(err, pkg.ErrNoSuchEndpoint) {
		t.Fatalf("get after unregister = %v, want ErrNoSuchEndpoint", err)
	}
}

func TestRegistrarUnregisterUnknown(t *testing.T) {
	r := newRegistrar()
	if err := r.unregister(9, 0, DirectionOut); !errors.Is(err, pkg.ErrNoSuchEndpoint) {
		t.Fatalf("unregister unknown = %v, want ErrNoSuchEndpoint", err)
	}
}

func TestRegistrarPeriodicBandwidthBoundary(t *testing.T) {
	r := newRegistrar()
	for i := 0; i < MaxPeriodicBandwidth; i++ {
		ep := &Endpoint{Address: 1, Number: i, Direction: DirectionIn, Type: TransferInterrupt}
		if err := r.register(ep); err != nil {
			t.Fatalf("register endpoint %d: %v", i, err)
		}
	}

	overflow := &Endpoint{Address: 1, Number: MaxPeriodicBandwidth, Direction: DirectionIn, Type: TransferInterrupt}
	err := r.register(overflow)
	if !errors.Is(err, pkg.ErrBandwidthExhausted) {
		t.Fatalf("33rd periodic endpoint = %v, want ErrBandwidthExhausted", err)
	}

	// The list must not have been corrupted: every previously admitted
	// endpoint is still retrievable.
	for i := 0; i < MaxPeriodicBandwidth; i++ {
		if _, err := r.get(1, i, DirectionIn); err != nil {
			t.Fatalf("endpoint %d lost after rejected registration: %v", i, err)
		}
	}
}

func TestRegistrarRoundTrip(t *testing.T) {
	r := newRegistrar()
	ep := &Endpoint{Address: 4, Number: 0, Direction: DirectionOut, Type: TransferControl}

	if err := r.register(ep); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.unregister(4, 0, DirectionOut); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	// Re-registering the same tuple after a clean unregister must succeed.
	if err := r.register(ep); err != nil {
		t.Fatalf("re-register after unregister: %v", err)
	}
}
