package view

import "sync/atomic"

// Lifetime tracks whether the view that issued a request is still mounted.
// Requests are never aborted on unmount; their results are dropped instead.
type Lifetime struct {
	ended atomic.Bool
}

func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// End marks the owning view as dismissed. It is safe to call more than once.
func (l *Lifetime) End() {
	l.ended.Store(true)
}

func (l *Lifetime) Alive() bool {
	return !l.ended.Load()
}
