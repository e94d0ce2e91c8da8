package farq

import "github.com/farqproto/farq/internal"

// Command bytes for the cmd field of a segment header (§3.1). Values match
// the wire constants of the reference implementation this engine's wire
// format is bit-for-bit compatible with.
const (
	cmdPush byte = 81 // carries an application payload fragment
	cmdAck  byte = 82 // acknowledges a single sn
	cmdWask byte = 83 // "window ask": probe peer for its current window
	cmdWins byte = 84 // "window inform": advertise our window unsolicited
)

func validCmd(cmd byte) bool {
	return cmd == cmdPush || cmd == cmdAck || cmd == cmdWask || cmd == cmdWins
}

// headerSize is the fixed-width wire header: conv(4) cmd(1) frg(1) wnd(2)
// ts(4) sn(4) una(4) len(4).
const headerSize = 24

// segment is the unit of both the wire protocol and the internal queues
// (§3.1). The wire fields are always populated; the internal-only fields
// (resendts, rto, fastack, xmit) are meaningful only while the segment is
// resident in sndBuf.
type segment struct {
	cmd     byte
	frg     byte
	wnd     uint16
	ts      uint32
	sn      Value
	una     Value
	payload []byte // only meaningful for cmdPush; nil/empty otherwise

	// internal-only retransmission bookkeeping (§3.1, §4.9).
	resendts uint32
	rto      uint32
	fastack  uint32
	xmit     uint32
}

// segmentLogicalLen is the number of sequence numbers a segment consumes. Every
// segment in this engine (PUSH included) consumes exactly one sn regardless
// of payload length -- unlike a byte-sequenced protocol, sn here numbers
// segments, not bytes (§3.1: "sn — sequence number within the conversation").
const segmentLogicalLen = 1

// segList is an ordered, append-at-tail, compact-on-removal sequence of
// segments, used for all four queues in §3.2 (sndQueue, sndBuf, rcvBuf,
// rcvQueue). Segments are pushed at the tail, except that InsertSorted
// places one at its sn position; middle removal compacts in place via a
// single forward-copy pass, each segment owning its own independently
// allocated payload slice.
type segList struct {
	items []*segment
}

func (q *segList) Len() int { return len(q.items) }

func (q *segList) Front() *segment {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

func (q *segList) PushBack(s *segment) {
	q.items = append(q.items, s)
}

// PopFront removes and returns the head segment, or nil if empty.
func (q *segList) PopFront() *segment {
	if len(q.items) == 0 {
		return nil
	}
	s := q.items[0]
	copy(q.items, q.items[1:])
	q.items[len(q.items)-1] = nil
	q.items = q.items[:len(q.items)-1]
	return s
}

// RemoveFrontWhile removes and discards segments from the front while pred
// returns true for the head segment, stopping at the first segment pred
// rejects or when the queue empties.
func (q *segList) RemoveFrontWhile(pred func(*segment) bool) int {
	n := 0
	for len(q.items) > 0 && pred(q.items[0]) {
		q.items[0] = nil
		q.items = q.items[1:]
		n++
	}
	return n
}

// RemoveSN removes the segment with the given sn, if present. Assumes the
// queue is sorted ascending by sn and stops scanning once sn could no
// longer appear further in.
func (q *segList) RemoveSN(sn Value) {
	for i, s := range q.items {
		if s.sn == sn {
			q.items[i] = nil
			q.items = internal.DeleteZeroed(q.items)
			return
		}
		if sn.LessThan(s.sn) {
			return
		}
	}
}

// InsertSorted inserts s keeping the queue in ascending sn order, walking
// from the tail as §4.5 specifies. Returns false (and drops s) if a segment
// with equal sn already exists.
func (q *segList) InsertSorted(s *segment) bool {
	i := len(q.items) - 1
	for ; i >= 0; i-- {
		other := q.items[i]
		if other.sn == s.sn {
			return false // duplicate, drop
		}
		if other.sn.LessThan(s.sn) {
			break
		}
	}
	q.items = append(q.items, nil)
	copy(q.items[i+2:], q.items[i+1:len(q.items)-1])
	q.items[i+1] = s
	return true
}

// Reset drops all segments, releasing references for GC.
func (q *segList) Reset() {
	for i := range q.items {
		q.items[i] = nil
	}
	q.items = q.items[:0]
}
