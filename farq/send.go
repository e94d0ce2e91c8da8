package farq

// Send accepts an application message and appends its fragments to
// sndQueue (§4.2). Send never blocks and never partially applies: on
// ErrMessageTooLarge no segment is queued and no already-queued segment is
// mutated.
//
// In stream mode (SetStream(true)) a short tail segment already queued is
// topped up toward mss before any new segments are created, so repeated
// small writes coalesce the way a byte-stream socket's buffering does; in
// message mode every Send call produces its own independent fragment run
// with frg counting down to 0 at the last fragment.
func (e *Engine) Send(payload []byte) error {
	if e.released {
		return ErrClosed
	}
	mss := int(e.mss)

	var topUp int // bytes of payload absorbed by extending the queued tail
	if e.stream {
		if tail := e.sndQueue.items; len(tail) > 0 {
			last := tail[len(tail)-1]
			if room := mss - len(last.payload); room > 0 {
				topUp = room
				if topUp > len(payload) {
					topUp = len(payload)
				}
			}
		}
	}
	remaining := payload[topUp:]

	var count int
	if e.stream {
		if len(remaining) > 0 {
			count = (len(remaining) + mss - 1) / mss
		}
	} else {
		count = (len(remaining) + mss - 1) / mss
		if count == 0 {
			count = 1 // §4.2: zero-length message still occupies one segment
		}
	}

	if count >= int(e.rcvWnd) {
		return ErrMessageTooLarge
	}

	if topUp > 0 {
		last := e.sndQueue.items[e.sndQueue.Len()-1]
		grown := make([]byte, len(last.payload)+topUp)
		copy(grown, last.payload)
		copy(grown[len(last.payload):], payload[:topUp])
		last.payload = grown
	}

	for i := 0; i < count; i++ {
		start := i * mss
		end := start + mss
		if end > len(remaining) {
			end = len(remaining)
		}
		chunk := make([]byte, end-start)
		copy(chunk, remaining[start:end])

		frg := byte(0)
		if !e.stream {
			frg = byte(count - i - 1)
		}
		e.sndQueue.PushBack(&segment{cmd: cmdPush, frg: frg, payload: chunk})
	}
	return nil
}
