// Package farq implements a reliable, ordered, message-oriented ARQ engine
// layered above an unreliable datagram substrate. An Engine is a single
// control block for one conversation: the caller demultiplexes datagrams to
// the right Engine by conversation id and drives it on a periodic clock via
// Update/Check, exactly as described for the protocol this package
// implements.
//
// Engine is not safe for concurrent use: every exported method mutates
// shared state and must be serialized by the embedder, either by confining
// an Engine to one goroutine or by holding an external lock around it. No
// method blocks or suspends; the Output callback is invoked synchronously
// from Flush and must not re-enter the same Engine.
package farq

import (
	"log/slog"

	"github.com/farqproto/farq/internal"
)

// Defaults mirror §3.2/§4's stated configuration defaults.
const (
	DefaultMTU        = 1400
	DefaultInterval   = 100
	DefaultSndWnd     = 32
	DefaultRcvWnd     = 128
	DefaultDeadLink   = 20
	DefaultFastLimit  = 5
	minInterval       = 10
	maxInterval       = 5000
	minMTU            = 50
	probeInitialWait  = 7000
	probeMaxWait      = 120000
	clockResetWindow  = 10000
	stateAlive uint32 = 0
	stateDead  uint32 = 0xFFFFFFFF
)

const (
	probeAskSend uint8 = 1 << iota
	probeAskTell
)

// OutputFunc transmits one datagram synchronously. The engine ignores the
// return value for retry purposes -- a failed send is recovered by the next
// retransmit cycle, per §9 "failure is ignored by the engine" -- but a
// non-nil error is still surfaced to the logger so operators can see it.
type OutputFunc func(datagram []byte, user any) error

// Engine is the control block described in §3.2: sequence cursors, the four
// segment queues, window/congestion state, timing state, and configuration,
// all for a single conversation.
type Engine struct {
	logger

	conv   uint32
	user   any
	output OutputFunc

	// Sequence cursors (§3.2).
	sndUna Value
	sndNxt Value
	rcvNxt Value

	// Queues (§3.2). Counters are just len(queue.items); no separate
	// mirror field is kept since Go slices already report length in O(1).
	sndQueue segList
	sndBuf   segList
	rcvBuf   segList
	rcvQueue segList

	// Window and congestion state (§3.2, §4.8).
	sndWnd uint32
	rcvWnd uint32
	rmtWnd uint32
	cc     congestion
	nocwnd bool

	// Timing state (§3.2, §4.7, §4.10).
	current    uint32
	interval   uint32
	tsFlush    uint32
	rtt        rttEstimator
	tsProbe    uint32
	probe      internal.ProbeBackoff
	probeArmed bool
	updated    bool

	// Configuration (§3.2, §6.3).
	mtu             uint32
	mss             uint32
	stream          bool
	nodelay         uint8
	fastresend      uint32
	fastlimit       uint32
	deadLink        uint32
	state           uint32
	fastAckConserve bool // selects the conservative fastack-counting variant, see SetFastAckConserve

	// Pending signals and scratch (§3.2).
	probeFlags uint8
	ack        ackList
	buffer     []byte

	// Global stats, exposed via metrics.Collector and §8 scenario assertions.
	xmitTotal     uint64
	fastackTotal  uint64
	retransmitted uint64

	released bool
}

// New creates a control block for conv with the stated defaults, ready to
// accept Send/Input calls once an output function is attached via
// SetOutput. user is an opaque token the engine never interprets: it is
// returned by User and passed to every OutputFunc call, for embedder
// bookkeeping, matching the "user" token carried by the reference
// create(conv, user) constructor.
func New(conv uint32, user any) *Engine {
	e := &Engine{
		conv:      conv,
		user:      user,
		sndWnd:    DefaultSndWnd,
		rcvWnd:    DefaultRcvWnd,
		rmtWnd:    DefaultRcvWnd, // optimistic default: no handshake exists to learn the peer's real window from.
		cc:        newCongestion(),
		interval:  DefaultInterval,
		mtu:       DefaultMTU,
		fastlimit: DefaultFastLimit,
		deadLink:  DefaultDeadLink,
		rtt:       rttEstimator{rto: 200},
		probe:     internal.NewProbeBackoff(probeInitialWait, probeMaxWait),
	}
	e.mss = e.mtu - headerSize
	internal.SliceReuse(&e.buffer, 3*int(e.mtu+headerSize))
	return e
}

// SetOutput attaches the datagram transmit callback. Must be called before
// the first Flush.
func (e *Engine) SetOutput(fn OutputFunc) { e.output = fn }

// SetLogger attaches a structured logger; nil disables logging.
func (e *Engine) SetLogger(l *slog.Logger) { e.logger = logger{log: l} }

// Conv returns the conversation id.
func (e *Engine) Conv() uint32 { return e.conv }

// User returns the opaque user token supplied to New.
func (e *Engine) User() any { return e.user }

// State reports whether the link has been marked dead (§4.9, §7 "Dead
// link"). A dead link is observation-only: operations keep working so the
// embedder can observe the signal and decide to tear the Engine down.
func (e *Engine) State() bool { return e.state == stateDead }

// WaitSnd returns the number of segments still queued or in flight
// (nsnd_buf + nsnd_que), per §6.2.
func (e *Engine) WaitSnd() int { return e.sndBuf.Len() + e.sndQueue.Len() }

// Release drains all four queues and the ack list and frees the scratch
// buffer (§3.4). After Release, Send, Recv, Peek and Input return ErrClosed
// and Update and Flush do nothing.
func (e *Engine) Release() {
	e.sndQueue.Reset()
	e.sndBuf.Reset()
	e.rcvBuf.Reset()
	e.rcvQueue.Reset()
	e.ack.clear()
	e.buffer = nil
	e.released = true
}

// freeRcvWindow returns the local free receive window in segment slots,
// used for the wnd field of every outgoing record.
func (e *Engine) freeRcvWindow() uint32 {
	n := uint32(e.rcvQueue.Len())
	if n >= e.rcvWnd {
		return 0
	}
	return e.rcvWnd - n
}

func (e *Engine) minRTO() int32 {
	if e.nodelay == 0 {
		return 100
	}
	return 30
}
