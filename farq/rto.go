package farq

// rttEstimator is an RFC6298-style smoothed RTT estimator: it tracks srtt
// and rttvar and derives rto from them on every sample, clamped to
// [minRTO, 60000]. rto is expressed in integer milliseconds to match the
// wire's millisecond timestamps, and the floor is the caller-supplied
// minimum (30ms under nodelay, 100ms otherwise) rather than a fixed one.
type rttEstimator struct {
	srtt   int32 // smoothed round-trip time, ms
	rttvar int32 // round-trip time variation, ms
	rto    int32 // current retransmission timeout, ms
	inited bool
}

// sample feeds one RTT observation (ms) into the estimator and recomputes
// rto, clamped to [minRTO, 60000]. interval is the configured flush period,
// used as the floor for the rttvar contribution per §4.7.
func (e *rttEstimator) sample(rtt, interval, minRTO int32) {
	if rtt < 0 {
		return
	}
	if !e.inited {
		e.srtt = rtt
		e.rttvar = rtt / 2
		e.inited = true
	} else {
		delta := rtt - e.srtt
		if delta < 0 {
			delta = -delta
		}
		e.rttvar = (3*e.rttvar + delta) / 4
		e.srtt = (7*e.srtt + rtt) / 8
		if e.srtt < 1 {
			e.srtt = 1
		}
	}
	thresh := interval
	if v := 4 * e.rttvar; v > thresh {
		thresh = v
	}
	rto := e.srtt + thresh
	if rto < minRTO {
		rto = minRTO
	} else if rto > 60000 {
		rto = 60000
	}
	e.rto = rto
}
