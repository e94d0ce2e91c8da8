package farq

import "testing"

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	s := &segment{
		cmd:     cmdPush,
		frg:     3,
		wnd:     128,
		ts:      123456,
		sn:      42,
		una:     40,
		payload: []byte("hello"),
	}
	buf := make([]byte, headerSize+len(s.payload))
	n := encodeHeader(buf, 0xDEADBEEF, s)
	if n != headerSize {
		t.Fatalf("encodeHeader returned %d, want %d", n, headerSize)
	}
	copy(buf[headerSize:], s.payload)

	h := decodeHeader(buf)
	if h.conv != 0xDEADBEEF || h.cmd != cmdPush || h.frg != 3 || h.wnd != 128 ||
		h.ts != 123456 || h.sn != 42 || h.una != 40 || h.ln != uint32(len(s.payload)) {
		t.Fatalf("decoded header mismatch: %+v", h)
	}
}

func TestGetConv(t *testing.T) {
	buf := make([]byte, headerSize)
	encodeHeader(buf, 7, &segment{cmd: cmdAck})
	conv, ok := GetConv(buf)
	if !ok || conv != 7 {
		t.Fatalf("GetConv() = (%d, %v), want (7, true)", conv, ok)
	}
	if _, ok := GetConv(buf[:3]); ok {
		t.Fatal("GetConv should fail on a buffer shorter than 4 bytes")
	}
}

func TestValidCmd(t *testing.T) {
	for _, c := range []byte{cmdPush, cmdAck, cmdWask, cmdWins} {
		if !validCmd(c) {
			t.Errorf("validCmd(%d) = false, want true", c)
		}
	}
	if validCmd(0) {
		t.Error("validCmd(0) = true, want false")
	}
}
