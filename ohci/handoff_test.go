package ohci

import (
	"context"
	"testing"
	"time"

	"github.com/ardnew/ohci/pkg"
)

func TestGainControlColdStart(t *testing.T) {
	c, w, _ := newTestController()
	w.WriteL(RegControl, SetHCFS(0, HCFSReset)) // no legacy bit, control = RESET

	start := time.Now()
	outcome, err := c.GainControl(context.Background())
	if err != nil {
		t.Fatalf("GainControl: %v", err)
	}
	if outcome != pkg.HandoffColdStart {
		t.Fatalf("outcome = %v, want cold-start", outcome)
	}
	if elapsed := time.Since(start); elapsed < resetHoldDelay {
		t.Fatalf("GainControl returned after %v, want at least %v", elapsed, resetHoldDelay)
	}
	assertHandoffTermination(t, w)
}

func TestGainControlSMMOwned(t *testing.T) {
	c, w, _ := newTestController()
	w.WriteL(RegControl, ControlIR)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Simulate SMM clearing IR shortly after OCR is observed set.
		for {
			if w.ReadL(RegCommandStatus)&CmdStatusOCR != 0 {
				w.WriteL(RegControl, w.ReadL(RegControl)&^ControlIR)
				return
			}
			time.Sleep(time.Microsecond)
		}
	}()

	outcome, err := c.GainControl(context.Background())
	<-done
	if err != nil {
		t.Fatalf("GainControl: %v", err)
	}
	if outcome != pkg.HandoffSMMOwned {
		t.Fatalf("outcome = %v, want smm-owned", outcome)
	}
	assertHandoffTermination(t, w)
}

func TestGainControlBIOSOperationalLeftRunning(t *testing.T) {
	c, w, _ := newTestController()
	w.WriteL(RegControl, SetHCFS(0, HCFSOperational))

	outcome, err := c.GainControl(context.Background())
	if err != nil {
		t.Fatalf("GainControl: %v", err)
	}
	if outcome != pkg.HandoffBIOSRunning {
		t.Fatalf("outcome = %v, want bios-running", outcome)
	}
	if HCFS(w.ReadL(RegControl)) != HCFSOperational {
		t.Fatal("GainControl must not touch an already-operational controller")
	}
}

func TestGainControlBIOSSuspendResumes(t *testing.T) {
	c, w, _ := newTestController()
	w.WriteL(RegControl, SetHCFS(0, HCFSSuspend))

	outcome, err := c.GainControl(context.Background())
	if err != nil {
		t.Fatalf("GainControl: %v", err)
	}
	if outcome != pkg.HandoffBIOSSuspended {
		t.Fatalf("outcome = %v, want bios-suspended", outcome)
	}
	assertHandoffTermination(t, w)
}

func TestGainControlRespectsContextCancellation(t *testing.T) {
	c, w, _ := newTestController()
	w.WriteL(RegControl, ControlIR) // SMM never releases ownership

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := c.GainControl(ctx)
	if err == nil {
		t.Fatal("expected context deadline error when SMM never clears IR")
	}
}

// assertHandoffTermination checks invariant 6: after GainControl, functional
// state is one of {OPERATIONAL, RESET, RESUME} and IR is clear.
func assertHandoffTermination(t *testing.T, w interface{ ReadL(uint32) uint32 }) {
	t.Helper()
	ctl := w.ReadL(RegControl)
	if ctl&ControlIR != 0 {
		t.Fatal("interrupt-routing still set after GainControl")
	}
	switch HCFS(ctl) {
	case HCFSOperational, HCFSReset, HCFSResume:
	default:
		t.Fatalf("unexpected functional state %d after GainControl", HCFS(ctl))
	}
}
