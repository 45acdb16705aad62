// Package session holds session managers that are not tied to a
// particular transport.
package session

import "context"

// Noop satisfies interfaces.SessionManager for actions that carry no
// connection state, such as plain TCP probes.
type Noop struct{}

// NewNoop returns a session manager that does nothing
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) Open(ctx context.Context) error { return nil }

func (n *Noop) Close() error { return nil }
