package ohci

import "testing"

func TestHCFSRoundTrip(t *testing.T) {
	for _, state := range []uint32{HCFSReset, HCFSResume, HCFSOperational, HCFSSuspend} {
		ctl := SetHCFS(0, state)
		if got := HCFS(ctl); got != state {
			t.Errorf("HCFS(SetHCFS(0, %d)) = %d, want %d", state, got, state)
		}
	}
}

func TestSetHCFSPreservesOtherBits(t *testing.T) {
	ctl := ControlCLE | ControlBLE
	ctl = SetHCFS(ctl, HCFSOperational)
	if ctl&ControlCLE == 0 || ctl&ControlBLE == 0 {
		t.Fatalf("SetHCFS clobbered unrelated bits: %#x", ctl)
	}
	if HCFS(ctl) != HCFSOperational {
		t.Fatalf("HCFS = %d, want operational", HCFS(ctl))
	}
}

func TestFrameInterval(t *testing.T) {
	// fm-interval register with FI field 0x2EDF and some unrelated bits set
	// above the 14-bit field.
	fmInterval := uint32(0x2EDF) | (0x5 << 16)
	if got := FrameInterval(fmInterval); got != 0x2EDF {
		t.Fatalf("FrameInterval = %#x, want %#x", got, 0x2EDF)
	}
}

func TestRegRhPortStatus(t *testing.T) {
	if got := RegRhPortStatus(1); got != RegRhPortStatusBase {
		t.Fatalf("port 1 offset = %#x, want %#x", got, RegRhPortStatusBase)
	}
	if got := RegRhPortStatus(2); got != RegRhPortStatusBase+4 {
		t.Fatalf("port 2 offset = %#x, want %#x", got, RegRhPortStatusBase+4)
	}
}

func TestUsedInterruptsExcludesSF(t *testing.T) {
	if UsedInterrupts&IntSF != 0 {
		t.Fatal("UsedInterrupts must not include SF")
	}
	for _, bit := range []uint32{IntSO, IntWDH, IntUE, IntRHSC} {
		if UsedInterrupts&bit == 0 {
			t.Fatalf("UsedInterrupts missing bit %#x", bit)
		}
	}
}
