// Package cancel provides the cooperative cancellation token shared
// between the UI-side clipboard manager and the transfer worker.
package cancel

import "sync/atomic"

// Token is a shared cancellation flag
// Copies of a Token observe the same underlying flag, so it can be
// handed by value across the worker boundary
type Token struct {
	cancelled *atomic.Bool
}

// NewToken creates a fresh, uncancelled token
func NewToken() Token {
	return Token{cancelled: new(atomic.Bool)}
}

// Cancel requests cooperative cancellation
// Safe to call from any goroutine, idempotent
func (t Token) Cancel() {
	if t.cancelled != nil {
		t.cancelled.Store(true)
	}
}

// Cancelled reports whether cancellation has been requested
// The zero Token is never cancelled
func (t Token) Cancelled() bool {
	return t.cancelled != nil && t.cancelled.Load()
}
