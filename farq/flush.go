package farq

// Flush is a no-op until Update has run at least once (§4.9 "guarded by the
// updated flag"). It otherwise builds one or more MTU-sized datagrams,
// coalescing multiple records per datagram, and hands each to Output as
// soon as the next record would overflow the configured mtu.
//
// Emission order within a call exactly follows §4.9: pending ACKs, then the
// zero-window probe state machine, then any armed WASK/WINS, then promotion
// from sndQueue into sndBuf, then the retransmission walk over sndBuf, then
// any residual buffered bytes, then the congestion-window adjustment that
// the retransmission walk's loss signals feed.
func (e *Engine) Flush() {
	if !e.updated || e.released {
		return
	}
	e.buffer = e.buffer[:cap(e.buffer)]

	ptr := 0
	flushPending := func() {
		if ptr > 0 {
			if e.output != nil {
				if err := e.output(e.buffer[:ptr], e.user); err != nil {
					e.warn("output failed", errAttr(err))
				}
			}
			ptr = 0
		}
	}
	emit := func(s *segment) {
		need := headerSize + len(s.payload)
		if ptr+need > int(e.mtu) {
			flushPending()
		}
		ptr += encodeHeader(e.buffer[ptr:], e.conv, s)
		ptr += copy(e.buffer[ptr:], s.payload)
	}

	freeWnd := e.freeRcvWindow()

	// 1. Pending ACKs.
	for _, a := range e.ack.entries {
		emit(&segment{cmd: cmdAck, wnd: uint16(freeWnd), ts: a.ts, sn: a.sn, una: e.rcvNxt})
	}
	e.ack.clear()

	// 2. Zero-window probe arming/backoff.
	if e.rmtWnd == 0 {
		if !e.probeArmed {
			e.probeArmed = true
			e.probe.Reset()
			e.tsProbe = e.current + e.probe.Wait()
		}
		if int32(e.current-e.tsProbe) >= 0 {
			e.probeFlags |= probeAskSend
			e.probe.Advance()
			e.tsProbe = e.current + e.probe.Wait()
		}
	} else {
		e.probeArmed = false
		e.probe.Reset()
	}

	// 3. Emit armed WASK/WINS.
	if e.probeFlags&probeAskSend != 0 {
		emit(&segment{cmd: cmdWask, wnd: uint16(freeWnd), ts: e.current, una: e.rcvNxt})
	}
	if e.probeFlags&probeAskTell != 0 {
		emit(&segment{cmd: cmdWins, wnd: uint16(freeWnd), ts: e.current, una: e.rcvNxt})
	}
	e.probeFlags = 0

	// 4. Promote sndQueue -> sndBuf under the effective congestion window.
	effCwnd := min(e.sndWnd, e.rmtWnd)
	if !e.nocwnd {
		effCwnd = min(effCwnd, e.cc.cwnd)
	}
	threshold := e.sndUna.Add(effCwnd)
	for e.sndNxt.LessThan(threshold) {
		s := e.sndQueue.Front()
		if s == nil {
			break
		}
		e.sndQueue.PopFront()
		s.sn = e.sndNxt
		e.sndNxt = e.sndNxt.Add(segmentLogicalLen)
		s.resendts = e.current
		s.rto = uint32(e.rtt.rto)
		s.fastack = 0
		s.xmit = 0
		e.sndBuf.PushBack(s)
	}

	// 5. Retransmission walk.
	var change uint32
	var lost bool
	for _, s := range e.sndBuf.items {
		needsend := false
		switch {
		case s.xmit == 0:
			needsend = true
			s.xmit = 1
			s.rto = uint32(e.rtt.rto)
			var rtomin uint32
			if e.nodelay == 0 {
				rtomin = s.rto / 8
			}
			s.resendts = e.current + s.rto + rtomin
		case int32(e.current-s.resendts) >= 0:
			needsend = true
			s.xmit++
			e.xmitTotal++
			lost = true
			switch e.nodelay {
			case 0:
				s.rto += max(s.rto, uint32(e.rtt.rto))
			case 1:
				s.rto += s.rto / 2
			case 2:
				s.rto += uint32(e.rtt.rto) / 2
			}
			s.resendts = e.current + s.rto
		case e.fastresend > 0 && s.fastack >= e.fastresend &&
			(e.fastlimit == 0 || s.xmit <= e.fastlimit):
			needsend = true
			s.xmit++
			s.fastack = 0
			s.resendts = e.current + s.rto
			change++
			e.fastackTotal++
		}
		if needsend {
			s.ts = e.current
			s.wnd = uint16(freeWnd)
			s.una = e.rcvNxt
			emit(s)
			if s.xmit >= e.deadLink {
				e.state = stateDead
			}
		}
	}

	// 6. Flush any residual bytes.
	flushPending()

	// 7. Congestion-window adjustment from this flush's loss signals.
	if change > 0 {
		inFlight := uint32(e.sndNxt.Diff(e.sndUna))
		e.cc.onFastRetransmit(inFlight, change, e.mss)
	}
	if lost {
		e.cc.onTimeoutLoss(e.mss)
	}
	e.cc.floor()
}
