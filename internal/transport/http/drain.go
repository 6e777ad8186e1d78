package http

import "sync"

// Drain is closed when the server starts shutting down. Long-lived
// handlers watch it so http.Server.Shutdown does not wait on them.
// A nil *Drain never closes.
type Drain struct {
	once sync.Once
	ch   chan struct{}
}

func NewDrain() *Drain {
	return &Drain{ch: make(chan struct{})}
}

// Close is safe to call more than once; pass it to
// http.Server.RegisterOnShutdown.
func (d *Drain) Close() {
	d.once.Do(func() { close(d.ch) })
}

func (d *Drain) Done() <-chan struct{} {
	if d == nil {
		return nil
	}
	return d.ch
}
