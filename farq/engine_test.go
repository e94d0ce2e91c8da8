package farq

import (
	"bytes"
	"testing"
)

// pairedOutput wires two engines together synchronously: anything Flush
// emits on one side is appended to the other side's inbox, to be delivered
// by the test driver's next Input call.
type pairedOutput struct {
	inbox [][]byte
}

func (p *pairedOutput) send(datagram []byte, _ any) error {
	cp := make([]byte, len(datagram))
	copy(cp, datagram)
	p.inbox = append(p.inbox, cp)
	return nil
}

func newLoopbackPair(conv uint32) (a, b *Engine, aOut, bOut *pairedOutput) {
	aOut, bOut = &pairedOutput{}, &pairedOutput{}
	a = New(conv, nil)
	b = New(conv, nil)
	a.SetOutput(aOut.send)
	b.SetOutput(bOut.send)
	return a, b, aOut, bOut
}

// deliver drains src's outbox into dst.Input, in the order produced.
func deliver(t *testing.T, dst *Engine, out *pairedOutput) {
	t.Helper()
	for _, dg := range out.inbox {
		if err := dst.Input(dg); err != nil {
			t.Fatalf("Input: %v", err)
		}
	}
	out.inbox = out.inbox[:0]
}

func TestLoopbackSingleMessage(t *testing.T) {
	a, b, aOut, bOut := newLoopbackPair(1)

	msg := []byte("hello, world")
	if err := a.Send(msg); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var current uint32
	for i := 0; i < 20; i++ {
		current += 100
		a.Update(current)
		deliver(t, b, aOut)
		b.Update(current)
		deliver(t, a, bOut)

		buf := make([]byte, 64)
		if n, err := b.Recv(buf); err == nil {
			if !bytes.Equal(buf[:n], msg) {
				t.Fatalf("Recv = %q, want %q", buf[:n], msg)
			}
			return
		}
	}
	t.Fatal("message never arrived within the simulated window")
}

func TestLoopbackMultiFragmentMessage(t *testing.T) {
	a, b, aOut, bOut := newLoopbackPair(2)
	a.SetMTU(60) // force a tiny mss so a modest payload spans several fragments

	msg := bytes.Repeat([]byte("x"), 300)
	if err := a.Send(msg); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var current uint32
	for i := 0; i < 50; i++ {
		current += 50
		a.Update(current)
		deliver(t, b, aOut)
		b.Update(current)
		deliver(t, a, bOut)

		buf := make([]byte, 1024)
		if n, err := b.Recv(buf); err == nil {
			if !bytes.Equal(buf[:n], msg) {
				t.Fatalf("Recv produced %d bytes, want %d matching payload", n, len(msg))
			}
			return
		}
	}
	t.Fatal("fragmented message never reassembled within the simulated window")
}

func TestSendTooLargeRejectedWithoutMutation(t *testing.T) {
	e := New(3, nil)
	e.WndSize(0, 4) // tiny receive window advertised to ourselves
	big := bytes.Repeat([]byte("y"), int(e.mss)*10)
	if err := e.Send(big); err != ErrMessageTooLarge {
		t.Fatalf("Send() = %v, want ErrMessageTooLarge", err)
	}
	if e.sndQueue.Len() != 0 {
		t.Fatalf("sndQueue.Len() = %d, want 0 (no partial mutation)", e.sndQueue.Len())
	}
}

func TestRecvNoMessage(t *testing.T) {
	e := New(4, nil)
	buf := make([]byte, 16)
	if _, err := e.Recv(buf); err != ErrNoMessage {
		t.Fatalf("Recv() = %v, want ErrNoMessage", err)
	}
}

func TestPeekSizeIncompleteMessage(t *testing.T) {
	e := New(5, nil)
	e.rcvQueue.PushBack(&segment{cmd: cmdPush, frg: 1, payload: []byte("ab")})
	if _, err := e.PeekSize(); err != ErrIncompleteMessage {
		t.Fatalf("PeekSize() = %v, want ErrIncompleteMessage", err)
	}
}

func TestReleaseRejectsFurtherOps(t *testing.T) {
	e := New(6, nil)
	e.Release()
	if err := e.Send([]byte("x")); err != ErrClosed {
		t.Fatalf("Send() after Release = %v, want ErrClosed", err)
	}
	if err := e.Input(make([]byte, headerSize)); err != ErrClosed {
		t.Fatalf("Input() after Release = %v, want ErrClosed", err)
	}
}

func TestGetConvFromWire(t *testing.T) {
	a, b, aOut, _ := newLoopbackPair(99)
	_ = b
	a.Send([]byte("hi"))
	a.Update(1000)
	if len(aOut.inbox) == 0 {
		t.Fatal("expected at least one emitted datagram")
	}
	conv, ok := GetConv(aOut.inbox[0])
	if !ok || conv != 99 {
		t.Fatalf("GetConv() = (%d, %v), want (99, true)", conv, ok)
	}
}
