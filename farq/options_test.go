package farq

import "testing"

func TestSetIntervalClamps(t *testing.T) {
	e := New(1, nil)
	e.SetInterval(1)
	if e.interval != minInterval {
		t.Fatalf("interval = %d, want clamped to %d", e.interval, minInterval)
	}
	e.SetInterval(100000)
	if e.interval != maxInterval {
		t.Fatalf("interval = %d, want clamped to %d", e.interval, maxInterval)
	}
}

func TestSetNoDelayNegativeLeavesUnchanged(t *testing.T) {
	e := New(1, nil)
	e.SetNoDelay(1, 30, 2, 1)
	e.SetNoDelay(-1, -1, -1, -1)
	if e.nodelay != 1 || e.interval != 30 || e.fastresend != 2 || !e.nocwnd {
		t.Fatalf("negative args should leave fields unchanged, got %+v", e)
	}
}

func TestSetMTURejectsTooSmall(t *testing.T) {
	e := New(1, nil)
	if err := e.SetMTU(10); err != ErrBufferTooSmall {
		t.Fatalf("SetMTU(10) = %v, want ErrBufferTooSmall", err)
	}
}

func TestSetMTURecomputesMss(t *testing.T) {
	e := New(1, nil)
	if err := e.SetMTU(100); err != nil {
		t.Fatalf("SetMTU: %v", err)
	}
	if e.mss != 100-headerSize {
		t.Fatalf("mss = %d, want %d", e.mss, 100-headerSize)
	}
}

func TestWndSizeZeroLeavesUnchanged(t *testing.T) {
	e := New(1, nil)
	orig := e.sndWnd
	e.WndSize(0, 64)
	if e.sndWnd != orig {
		t.Fatalf("sndWnd changed despite zero argument: got %d, want %d", e.sndWnd, orig)
	}
	if e.rcvWnd != 64 {
		t.Fatalf("rcvWnd = %d, want 64", e.rcvWnd)
	}
}
