package farq

import "testing"

func TestUpdateFirstCallLatchesBaseline(t *testing.T) {
	e := New(1, nil)
	e.Update(1000)
	if !e.updated {
		t.Fatal("updated should be true after the first Update")
	}
	if e.tsFlush < 1000 {
		t.Fatalf("tsFlush = %d, want >= 1000", e.tsFlush)
	}
}

func TestUpdateResetsOnClockJump(t *testing.T) {
	e := New(1, nil)
	e.Update(1000)
	before := e.tsFlush
	e.Update(before - clockResetWindow - 1)
	if e.tsFlush == before {
		t.Fatal("tsFlush should resynchronize after a large clock jump")
	}
}

func TestCheckBeforeUpdateReturnsCurrent(t *testing.T) {
	e := New(1, nil)
	if got := e.Check(500); got != 500 {
		t.Fatalf("Check() before Update = %d, want 500 (not yet updated)", got)
	}
}

func TestCheckReturnsEarliestResendts(t *testing.T) {
	e := New(1, nil)
	e.SetInterval(5000)
	e.Update(0)
	e.sndBuf.PushBack(&segment{sn: 0, resendts: 5000})
	e.sndBuf.PushBack(&segment{sn: 1, resendts: 2000})
	got := e.Check(0)
	if got > 2000 {
		t.Fatalf("Check() = %d, want <= earliest resendts (2000)", got)
	}
}

func TestCheckReturnsCurrentWhenResendOverdue(t *testing.T) {
	e := New(1, nil)
	e.Update(0)
	e.sndBuf.PushBack(&segment{sn: 0, resendts: 0})
	if got := e.Check(50); got != 50 {
		t.Fatalf("Check() = %d, want 50 (an overdue resend forces immediate wake)", got)
	}
}
