package farq

// PeekSize returns the exact byte size of the next complete message in
// rcvQueue without consuming it, or an error if none is ready (§4.3
// peeksize). ErrNoMessage means rcvQueue is empty; ErrIncompleteMessage
// means the message at the head has not yet had its final fragment
// delivered.
func (e *Engine) PeekSize() (int, error) {
	return e.scanNextMessage()
}

// scanNextMessage walks rcvQueue from the head, summing payload lengths
// until a segment with frg==0 is found. It does not mutate any state.
func (e *Engine) scanNextMessage() (int, error) {
	if e.rcvQueue.Len() == 0 {
		return 0, ErrNoMessage
	}
	size := 0
	for _, s := range e.rcvQueue.items {
		size += len(s.payload)
		if s.frg == 0 {
			return size, nil
		}
	}
	return 0, ErrIncompleteMessage
}

// Recv copies the next complete message into buf and removes its segments
// from rcvQueue, then promotes newly-admissible segments from rcvBuf
// (§4.3). Returns the message size, or an error (ErrNoMessage,
// ErrIncompleteMessage, ErrBufferTooSmall) with buf untouched and no queue
// mutation.
func (e *Engine) Recv(buf []byte) (int, error) {
	if e.released {
		return 0, ErrClosed
	}
	size, err := e.scanNextMessage()
	if err != nil {
		return 0, err
	}
	if size > len(buf) {
		return 0, ErrBufferTooSmall
	}
	return e.consume(buf)
}

// Peek is identical to Recv but does not remove the message from rcvQueue
// or promote from rcvBuf.
func (e *Engine) Peek(buf []byte) (int, error) {
	if e.released {
		return 0, ErrClosed
	}
	size, err := e.scanNextMessage()
	if err != nil {
		return 0, err
	}
	if size > len(buf) {
		return 0, ErrBufferTooSmall
	}
	off := 0
	for _, s := range e.rcvQueue.items {
		off += copy(buf[off:], s.payload)
		if s.frg == 0 {
			break
		}
	}
	return off, nil
}

func (e *Engine) consume(buf []byte) (int, error) {
	windowWasClosed := uint32(e.rcvQueue.Len()) >= e.rcvWnd

	off := 0
	for {
		s := e.rcvQueue.PopFront()
		off += copy(buf[off:], s.payload)
		if s.frg == 0 {
			break
		}
	}

	e.promoteRcvBuf()

	if windowWasClosed && uint32(e.rcvQueue.Len()) < e.rcvWnd {
		// §4.3 fast-recovery hint: window just reopened, tell the peer on
		// the next flush instead of waiting for it to find out via probe.
		e.probeFlags |= probeAskTell
	}
	return off, nil
}

// promoteRcvBuf moves contiguous segments from rcvBuf to rcvQueue while the
// head of rcvBuf is exactly rcvNxt and rcvQueue has room (§4.3, invariant
// 3).
func (e *Engine) promoteRcvBuf() {
	for {
		head := e.rcvBuf.Front()
		if head == nil || head.sn != e.rcvNxt {
			break
		}
		if uint32(e.rcvQueue.Len()) >= e.rcvWnd {
			break
		}
		e.rcvBuf.PopFront()
		e.rcvQueue.PushBack(head)
		e.rcvNxt = e.rcvNxt.Add(segmentLogicalLen)
	}
}
