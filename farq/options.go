package farq

import "github.com/farqproto/farq/internal"

// SetMTU sets the maximum datagram size (§6.3). mtu must be >= 50; mss is
// recomputed as mtu-24 and the scratch coalescing buffer is reallocated.
func (e *Engine) SetMTU(mtu int) error {
	if mtu < minMTU {
		return ErrBufferTooSmall
	}
	e.mtu = uint32(mtu)
	e.mss = e.mtu - headerSize
	internal.SliceReuse(&e.buffer, 3*int(e.mtu+headerSize))
	return nil
}

// SetInterval sets the flush period in milliseconds, clamped to [10, 5000]
// per §6.3.
func (e *Engine) SetInterval(ms int) {
	switch {
	case ms < minInterval:
		ms = minInterval
	case ms > maxInterval:
		ms = maxInterval
	}
	e.interval = uint32(ms)
}

// SetNoDelay configures nodelay mode, the flush interval, the fast-resend
// dup-ack threshold, and whether congestion control gates sending (§6.3). A
// negative argument leaves the corresponding field unchanged, matching the
// reference configuration call's "each argument negative = leave unchanged"
// convention.
func (e *Engine) SetNoDelay(nodelay, interval, resend, nocwnd int) {
	if nodelay >= 0 {
		e.nodelay = uint8(nodelay)
	}
	if interval >= 0 {
		e.SetInterval(interval)
	}
	if resend >= 0 {
		e.fastresend = uint32(resend)
	}
	if nocwnd >= 0 {
		e.nocwnd = nocwnd != 0
	}
}

// SetFastLimit sets the cap on fast retransmissions per segment; 0 disables
// the cap (§6.3 fastlimit).
func (e *Engine) SetFastLimit(n int) {
	if n < 0 {
		n = 0
	}
	e.fastlimit = uint32(n)
}

// SetDeadLink sets the retransmission-count threshold after which State()
// reports the link dead (§3.2 dead_link).
func (e *Engine) SetDeadLink(n int) {
	if n < 0 {
		n = 0
	}
	e.deadLink = uint32(n)
}

// SetStream enables or disables byte-stream coalescing on Send (§4.2, §6.3).
func (e *Engine) SetStream(stream bool) { e.stream = stream }

// Stream reports whether stream mode is enabled.
func (e *Engine) Stream() bool { return e.stream }

// SetFastAckConserve selects the conservative variant of fastack
// accounting: when enabled, the "max ack seen this input" tie-break prefers
// the sn whose ts is also maximal, and fastack is only incremented for a
// segment if the new ack's ts is >= that segment's ts. Default is the
// non-conservative variant.
func (e *Engine) SetFastAckConserve(conserve bool) { e.fastAckConserve = conserve }

// WndSize sets the local send window cap and local receive window (§6.3).
// A zero argument leaves the corresponding field unchanged.
func (e *Engine) WndSize(sndWnd, rcvWnd int) {
	if sndWnd > 0 {
		e.sndWnd = uint32(sndWnd)
	}
	if rcvWnd > 0 {
		e.rcvWnd = uint32(rcvWnd)
	}
}
