// Package activity fans operator interaction signals out to subscribers.
//
// The browser page reports pointer, click, scroll and key events to the
// dashboard server, and the server reports page navigation; both end up here
// and are delivered to the idle monitor.
package activity

import (
	"sync"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.ActivitySource = (*Hub)(nil)

// Hub is an in-process ActivitySource. Publish is synchronous; subscribers must
// return quickly.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(domainauth.ActivityKind)
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]func(domainauth.ActivityKind))}
}

// Subscribe implements ports.ActivitySource.
func (h *Hub) Subscribe(fn func(domainauth.ActivityKind)) func() {
	if fn == nil {
		return func() {}
	}
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// Publish delivers kind to every current subscriber.
func (h *Hub) Publish(kind domainauth.ActivityKind) {
	h.mu.RLock()
	fns := make([]func(domainauth.ActivityKind), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(kind)
	}
}

// Subscribers returns the number of registered subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
