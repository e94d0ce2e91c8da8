package farq

import "log/slog"

// Input parses an incoming datagram -- one or more concatenated wire
// records -- and applies their effects to the control block (§4.4). It
// returns a *ParseError on the first malformed record; records already
// processed earlier in the same datagram keep their effects, per §7 "parse
// failures... already-processed records in the same datagram are kept".
func (e *Engine) Input(datagram []byte) error {
	if e.released {
		return ErrClosed
	}

	var (
		sawAck     bool
		maxAckSn   Value
		maxAckTs   uint32
		haveMaxAck bool
		unaBefore  = e.sndUna
	)

	buf := datagram
	offset := 0
	for len(buf) >= headerSize {
		h := decodeHeader(buf)
		if h.conv != e.conv {
			return &ParseError{Offset: offset, Err: ErrConvMismatch}
		}
		if uint32(len(buf))-headerSize < h.ln {
			return &ParseError{Offset: offset, Err: ErrShortPayload}
		}
		if !validCmd(h.cmd) {
			return &ParseError{Offset: offset, Err: ErrUnknownCommand}
		}

		e.rmtWndFromHeader(h.wnd)
		e.parseUna(h.una)
		e.shrinkBuf()

		payload := buf[headerSize : headerSize+int(h.ln)]

		switch h.cmd {
		case cmdPush:
			e.handlePush(h, payload)
		case cmdAck:
			if d := int32(e.current - h.ts); d >= 0 {
				e.rtt.sample(d, int32(e.interval), e.minRTO())
			}
			e.parseAck(h.sn)
			if !haveMaxAck || e.preferAsMaxAck(h.sn, h.ts, maxAckSn, maxAckTs, haveMaxAck) {
				maxAckSn, maxAckTs, haveMaxAck = h.sn, h.ts, true
			}
			sawAck = true
		case cmdWask:
			e.probeFlags |= probeAskTell
		case cmdWins:
			// advisory only, no state change.
		}

		rec := headerSize + int(h.ln)
		buf = buf[rec:]
		offset += rec
	}
	trailing := len(buf) > 0

	e.promoteRcvBuf()

	if sawAck {
		e.parseFastack(maxAckSn, maxAckTs)
	}
	if e.sndUna != unaBefore {
		e.cc.onUnaAdvance(e.rmtWnd, e.mss)
	}
	if trailing {
		return &ParseError{Offset: offset, Err: ErrShortHeader}
	}
	return nil
}

// preferAsMaxAck implements the IKCP_FASTACK_CONSERVE tie-break of §4.4: the
// conservative variant prefers the ack whose ts is also maximal; the
// default variant keeps the ack with the largest sn.
func (e *Engine) preferAsMaxAck(sn Value, ts uint32, curMaxSn Value, curMaxTs uint32, have bool) bool {
	if !have {
		return true
	}
	if e.fastAckConserve {
		return ts >= curMaxTs
	}
	return curMaxSn.LessThan(sn)
}

func (e *Engine) rmtWndFromHeader(wnd uint16) {
	e.rmtWnd = uint32(wnd)
}

// handlePush implements §4.4's PUSH dispatch and §9's documented asymmetry:
// a segment before rcv_nxt+rcv_wnd is always ack'd, including one before
// rcv_nxt that duplicates data already delivered; a segment at or past
// rcv_nxt+rcv_wnd is dropped with no ack at all.
func (e *Engine) handlePush(h decodedHeader, rawPayload []byte) {
	if !h.sn.LessThan(e.rcvNxt.Add(e.rcvWnd)) {
		return // dropped silently, no ack -- past the receive window.
	}
	e.ack.push(h.sn, h.ts)

	if h.sn.LessThan(e.rcvNxt) {
		return // already delivered; acked above for fast-recovery, not reinserted.
	}
	payload := make([]byte, len(rawPayload))
	copy(payload, rawPayload)
	s := &segment{cmd: cmdPush, frg: h.frg, sn: h.sn, payload: payload}
	if !e.rcvBuf.InsertSorted(s) {
		e.trace("dup segment dropped", slog.Uint64("sn", uint64(h.sn)))
	}
}
