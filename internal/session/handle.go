package session

import (
	"context"
	"sync"

	"github.com/videvian/log-in-with-ethos/internal/metrics"
)

// Handle is the session context threaded through the components that need
// the session. It forwards actions to the Provider and notifies subscribers
// with the new Snapshot after each one.
type Handle struct {
	provider Provider

	mu        sync.Mutex
	subs      map[uint64]func(Snapshot)
	nextSubID uint64
}

// NewHandle wraps a provider.
func NewHandle(p Provider) *Handle {
	return &Handle{
		provider: p,
		subs:     make(map[uint64]func(Snapshot)),
	}
}

// Snapshot returns the provider's current state.
func (h *Handle) Snapshot() Snapshot {
	return h.provider.Snapshot()
}

// Login logs in through the provider. Subscribers are notified even when
// login fails, since the provider may have become ready.
func (h *Handle) Login(ctx context.Context) error {
	err := h.provider.Login(ctx)
	if err == nil {
		metrics.Global.RecordLogin()
	}
	h.notify()
	return err
}

// Logout logs out through the provider.
func (h *Handle) Logout(ctx context.Context) error {
	err := h.provider.Logout(ctx)
	if err == nil {
		metrics.Global.RecordLogout()
	}
	h.notify()
	return err
}

// Subscribe registers fn for snapshot changes.
func (h *Handle) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextSubID
	h.nextSubID++
	h.subs[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *Handle) notify() {
	snap := h.provider.Snapshot()

	h.mu.Lock()
	subs := make([]func(Snapshot), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
