// Package sim provides a simulated loss+latency tunnel for driving two
// farq.Engine instances against each other under controlled network
// conditions, the way the protocol's own scenario suite (bulk transfer,
// lossy transfer, fast retransmit, zero-window probing, stream coalescing,
// dead link) is defined.
package sim

import "github.com/farqproto/farq/internal"

// packet is one datagram in flight, not yet due for delivery.
type packet struct {
	deliverAt uint32
	data      []byte
}

// Tunnel carries datagrams between two peers named A and B with a fixed
// one-way latency and independent per-direction loss probabilities. Loss is
// decided once, at send time, using a seeded xorshift PRNG (the same
// generator the wider package uses for any pseudo-random need) so a
// scenario run is exactly reproducible given its seed.
type Tunnel struct {
	latencyMs      uint32
	lossAB, lossBA float64
	prng           uint32

	aToB, bToA           []packet
	droppedAB, droppedBA int

	sentAB, sentBA int
	dropOnceAB     map[int]bool // 1-indexed ordinal of the A->B datagram to force-drop
	dropOnceBA     map[int]bool
}

// NewTunnel builds a Tunnel. lossAB/lossBA are probabilities in [0,1] of a
// datagram sent A->B (resp. B->A) being dropped. seed of 0 is replaced with
// 1, since a zero xorshift state never advances.
func NewTunnel(latencyMs uint32, lossAB, lossBA float64, seed uint32) *Tunnel {
	if seed == 0 {
		seed = 1
	}
	return &Tunnel{latencyMs: latencyMs, lossAB: lossAB, lossBA: lossBA, prng: seed}
}

func (t *Tunnel) roll() float64 {
	t.prng = internal.Prand32(t.prng)
	return float64(t.prng%1_000_000) / 1_000_000
}

// SendAtoB enqueues dg, sent at atMs, for delivery to B after the tunnel's
// latency, unless the per-direction loss roll drops it.
func (t *Tunnel) SendAtoB(dg []byte, atMs uint32) {
	t.sentAB++
	if t.dropOnceAB[t.sentAB] || t.roll() < t.lossAB {
		delete(t.dropOnceAB, t.sentAB)
		t.droppedAB++
		return
	}
	cp := append([]byte(nil), dg...)
	t.aToB = append(t.aToB, packet{deliverAt: atMs + t.latencyMs, data: cp})
}

// SendBtoA is SendAtoB's mirror for the B->A direction.
func (t *Tunnel) SendBtoA(dg []byte, atMs uint32) {
	t.sentBA++
	if t.dropOnceBA[t.sentBA] || t.roll() < t.lossBA {
		delete(t.dropOnceBA, t.sentBA)
		t.droppedBA++
		return
	}
	cp := append([]byte(nil), dg...)
	t.bToA = append(t.bToA, packet{deliverAt: atMs + t.latencyMs, data: cp})
}

// DropNthAtoB arranges for the nth (1-indexed) datagram sent A->B to be
// dropped exactly once, regardless of the configured loss probability --
// for deterministically exercising fast retransmit against a single lost
// segment rather than a statistical loss rate.
func (t *Tunnel) DropNthAtoB(n int) {
	if t.dropOnceAB == nil {
		t.dropOnceAB = make(map[int]bool)
	}
	t.dropOnceAB[n] = true
}

// DeliverDue returns (and removes from the tunnel) every datagram whose
// delivery time has arrived by currentMs. Both directions are fixed
// one-way latency, so enqueue order already matches delivery order.
func (t *Tunnel) DeliverDue(currentMs uint32) (toA, toB [][]byte) {
	i := 0
	for ; i < len(t.bToA) && t.bToA[i].deliverAt <= currentMs; i++ {
		toA = append(toA, t.bToA[i].data)
	}
	t.bToA = t.bToA[i:]

	j := 0
	for ; j < len(t.aToB) && t.aToB[j].deliverAt <= currentMs; j++ {
		toB = append(toB, t.aToB[j].data)
	}
	t.aToB = t.aToB[j:]
	return toA, toB
}

// DroppedCounts reports how many datagrams have been dropped in each
// direction so far.
func (t *Tunnel) DroppedCounts() (ab, ba int) { return t.droppedAB, t.droppedBA }
