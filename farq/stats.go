package farq

// Stats is a point-in-time snapshot of the fields an external observer (a
// metrics exporter, a debug dump) may need, gathered without exposing the
// Engine's internal representation directly.
type Stats struct {
	Cwnd               uint32
	Ssthresh           uint32
	RTOMillis          uint32
	SRTTMillis         int32
	SndUna             uint32
	SndNxt             uint32
	RcvNxt             uint32
	XmitTotal          uint64
	FastackRetransmits uint64
	Dead               bool
}

// Stats returns a snapshot of the congestion, sequence, and counter state of
// e. Safe to call at any point in e's lifecycle, including after Release
// (it then reports the values held when Release was called).
func (e *Engine) Stats() Stats {
	return Stats{
		Cwnd:               e.cc.cwnd,
		Ssthresh:           e.cc.ssthresh,
		RTOMillis:          uint32(e.rtt.rto),
		SRTTMillis:         e.rtt.srtt,
		SndUna:             uint32(e.sndUna),
		SndNxt:             uint32(e.sndNxt),
		RcvNxt:             uint32(e.rcvNxt),
		XmitTotal:          e.xmitTotal,
		FastackRetransmits: e.fastackTotal,
		Dead:               e.State(),
	}
}
