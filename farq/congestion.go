package farq

// congestion holds the byte-granular slow-start / congestion-avoidance state
// of §4.8: cwnd (segments), ssthresh (segments), and incr (the byte
// accumulator that smooths cwnd growth across the mss boundary).
type congestion struct {
	cwnd     uint32
	ssthresh uint32
	incr     uint32
}

func newCongestion() congestion {
	return congestion{cwnd: 1, ssthresh: 2, incr: 0}
}

// onUnaAdvance grows cwnd after new data has been acknowledged, per §4.8.
// Only called when snd_una advanced during the most recent Input call, and
// only has effect while cwnd < rmtWnd.
func (c *congestion) onUnaAdvance(rmtWnd, mss uint32) {
	if c.cwnd >= rmtWnd {
		return
	}
	if c.cwnd < c.ssthresh {
		c.cwnd++
		c.incr += mss
	} else {
		if c.incr < mss {
			c.incr = mss
		}
		c.incr += mss*mss/c.incr + mss/16
		if (c.cwnd+1)*mss <= c.incr {
			if mss > 0 {
				c.cwnd = (c.incr + mss - 1) / mss
			} else {
				c.cwnd++
			}
		}
	}
	if c.cwnd > rmtWnd {
		c.cwnd = rmtWnd
	}
	if maxIncr := rmtWnd * mss; c.incr > maxIncr {
		c.incr = maxIncr
	}
}

// onFastRetransmit applies the loss-collapse branch triggered by a
// fast-retransmit event during flush (§4.8): ssthresh halves the current
// in-flight count, cwnd is set to ssthresh plus the number of segments that
// were fast-retransmitted this flush.
func (c *congestion) onFastRetransmit(inFlight uint32, changeCount uint32, mss uint32) {
	ssthresh := inFlight / 2
	if ssthresh < 2 {
		ssthresh = 2
	}
	c.ssthresh = ssthresh
	c.cwnd = ssthresh + changeCount
	c.incr = c.cwnd * mss
}

// onTimeoutLoss applies the loss-collapse branch triggered by an RTO firing
// during flush (§4.8): a full slow-start reset.
func (c *congestion) onTimeoutLoss(mss uint32) {
	ssthresh := c.cwnd / 2
	if ssthresh < 2 {
		ssthresh = 2
	}
	c.ssthresh = ssthresh
	c.cwnd = 1
	c.incr = mss
}

func (c *congestion) floor() {
	if c.cwnd < 1 {
		c.cwnd = 1
	}
}
