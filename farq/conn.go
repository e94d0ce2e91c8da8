package farq

// Conn adapts an Engine to the io.Reader/io.Writer/io.Closer shape for
// callers that want message-oriented semantics without touching the
// send/recv/input/update vocabulary directly. Conn does not change the
// engine's non-blocking contract: Write/Read return immediately with
// ErrNoMessage-shaped failures exactly as the underlying Engine would.
type Conn struct {
	*Engine
}

// NewConn wraps an already-configured Engine.
func NewConn(e *Engine) *Conn { return &Conn{Engine: e} }

// Write queues p as one message via Send and reports its full length on
// success, satisfying io.Writer's contract for a non-blocking, message-
// oriented transport (no short writes: either the whole message queues or
// none of it does).
func (c *Conn) Write(p []byte) (int, error) {
	if err := c.Engine.Send(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read copies the next complete message into p via Recv, satisfying
// io.Reader's contract. ErrNoMessage and ErrIncompleteMessage are returned
// as-is rather than mapped to io.EOF, since neither means the conversation
// has ended -- only that nothing is ready yet.
func (c *Conn) Read(p []byte) (int, error) {
	return c.Engine.Recv(p)
}

// Close releases the underlying Engine.
func (c *Conn) Close() error {
	c.Engine.Release()
	return nil
}
