package farq

import (
	"errors"
	"strconv"
)

// Sentinel errors returned by the public operations of Engine. They mirror
// the small, deliberately flat error surface described for the engine: no
// operation throws or blocks, and every failure is one of these values (or
// a *ParseError wrapping one of them for malformed datagrams).
var (
	// ErrMessageTooLarge is returned by Send when the payload would require
	// more fragments than fit in the local receive window.
	ErrMessageTooLarge = errors.New("farq: message requires more fragments than rcv_wnd allows")
	// ErrNoMessage is returned by Recv/PeekSize when rcv_queue is empty.
	ErrNoMessage = errors.New("farq: no message ready")
	// ErrIncompleteMessage is returned by Recv/PeekSize when rcv_queue's
	// head message has not yet had all its fragments delivered.
	ErrIncompleteMessage = errors.New("farq: incomplete message")
	// ErrBufferTooSmall is returned by Recv when the caller-supplied buffer
	// cannot hold the next complete message.
	ErrBufferTooSmall = errors.New("farq: output buffer too small for message")
	// ErrConvMismatch is returned by Input when a record's conv field does
	// not match this Engine's conversation id.
	ErrConvMismatch = errors.New("farq: conversation id mismatch")
	// ErrShortHeader is returned by Input when fewer than headerSize bytes
	// remain where a record header was expected.
	ErrShortHeader = errors.New("farq: short segment header")
	// ErrShortPayload is returned by Input when a record's len field claims
	// more payload bytes than remain in the datagram.
	ErrShortPayload = errors.New("farq: segment payload exceeds remaining datagram")
	// ErrUnknownCommand is returned by Input when a record's cmd field is
	// not one of PUSH, ACK, WASK, WINS.
	ErrUnknownCommand = errors.New("farq: unknown command byte")
	// ErrClosed is returned by operations invoked on a released Engine.
	ErrClosed = errors.New("farq: engine released")
)

// ParseError wraps a datagram parse failure (§4.1, §7) with the byte offset
// at which parsing stopped, so callers/loggers can report where in a
// multi-record datagram things went wrong. Records successfully parsed
// before the failing one have already had their effects applied -- Input
// does not roll back partial progress within a datagram.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return "farq: parse error at offset " + strconv.Itoa(e.Offset) + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }
