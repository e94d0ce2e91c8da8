package farq

// parseUna deletes every segment in sndBuf with sn < una (§4.6). sndBuf is
// sn-ordered so this is a bounded prefix removal.
func (e *Engine) parseUna(una Value) {
	e.sndBuf.RemoveFrontWhile(func(s *segment) bool {
		return s.sn.LessThan(una)
	})
}

// parseAck deletes the single sndBuf segment whose sn equals sn, if any
// (§4.6). Out-of-range sn (before snd_una or at/after snd_nxt) is ignored.
func (e *Engine) parseAck(sn Value) {
	if sn.LessThan(e.sndUna) || !sn.LessThan(e.sndNxt) {
		return
	}
	e.sndBuf.RemoveSN(sn)
}

// parseFastack increments fastack on every sndBuf segment with sn < maxsn
// (§4.6), honoring the IKCP_FASTACK_CONSERVE gate (§4.4, §9) when enabled.
func (e *Engine) parseFastack(maxsn Value, maxts uint32) {
	for _, s := range e.sndBuf.items {
		if !s.sn.LessThan(maxsn) {
			break // maxsn <= seg.sn (§4.6 stop condition)
		}
		if e.fastAckConserve && maxts < s.ts {
			continue
		}
		s.fastack++
	}
}

// shrinkBuf sets sndUna to the head of sndBuf, or to sndNxt if sndBuf is
// empty (§4.6, invariant 1).
func (e *Engine) shrinkBuf() {
	if head := e.sndBuf.Front(); head != nil {
		e.sndUna = head.sn
	} else {
		e.sndUna = e.sndNxt
	}
}
