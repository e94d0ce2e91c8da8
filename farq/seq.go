package farq

// Value is a 32-bit sequence number (sn/una/ack field on the wire). Values
// wrap around modulo 2**32; all ordering between two Values must go through
// signed wraparound difference, never a plain unsigned comparison, since a
// numerically smaller Value may actually be "later" after a wrap.
type Value uint32

// Diff returns the signed distance v-other in sequence space. A positive
// result means v is ahead of other; this is the only correct way to compare
// two sequence numbers in a space that wraps.
func (v Value) Diff(other Value) int32 {
	return int32(v - other)
}

// LessThan reports whether v precedes other in sequence space.
func (v Value) LessThan(other Value) bool {
	return v.Diff(other) < 0
}

// LessThanEq reports whether v precedes or equals other in sequence space.
func (v Value) LessThanEq(other Value) bool {
	return v.Diff(other) <= 0
}

// Add returns v advanced by delta.
func (v Value) Add(delta uint32) Value {
	return v + Value(delta)
}

// inWindow reports whether v falls in [lo, lo+size) in sequence space.
func inWindow(v, lo Value, size uint32) bool {
	return !v.LessThan(lo) && v.Diff(lo) < int32(size)
}
