package sim

import "github.com/farqproto/farq/farq"

// Harness wires two Engines (A and B) to each other through a Tunnel and
// drives their clocks in lockstep, the way an embedder would run a farq
// conversation over a real socket pair, but with simulated network
// conditions instead of a kernel.
type Harness struct {
	A, B    *farq.Engine
	Tunnel  *Tunnel
	current uint32
}

// NewHarness creates two Engines sharing conv and wires their Output
// callbacks into tunnel.
func NewHarness(conv uint32, tunnel *Tunnel) *Harness {
	h := &Harness{A: farq.New(conv, nil), B: farq.New(conv, nil), Tunnel: tunnel}
	h.A.SetOutput(func(dg []byte, _ any) error {
		h.Tunnel.SendAtoB(dg, h.current)
		return nil
	})
	h.B.SetOutput(func(dg []byte, _ any) error {
		h.Tunnel.SendBtoA(dg, h.current)
		return nil
	})
	return h
}

// Step advances the simulated clock by stepMs, delivering any datagrams
// that become due and running both Engines' Update.
func (h *Harness) Step(stepMs uint32) {
	h.current += stepMs
	toA, toB := h.Tunnel.DeliverDue(h.current)
	for _, dg := range toA {
		h.A.Input(dg)
	}
	for _, dg := range toB {
		h.B.Input(dg)
	}
	h.A.Update(h.current)
	h.B.Update(h.current)
}

// Run steps the harness stepMs at a time until maxSteps have elapsed or
// until cond reports done, whichever comes first. Returns whether cond was
// satisfied.
func (h *Harness) Run(stepMs uint32, maxSteps int, cond func(h *Harness) bool) bool {
	for i := 0; i < maxSteps; i++ {
		h.Step(stepMs)
		if cond(h) {
			return true
		}
	}
	return false
}
