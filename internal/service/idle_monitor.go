package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// DefaultIdleTimeout is how long a session may go without operator activity.
const DefaultIdleTimeout = 20 * time.Minute

// IdleMonitorOptions groups dependencies for IdleMonitor.
type IdleMonitorOptions struct {
	Clock  clock.Clock          // Optional: defaults to the wall clock
	Source ports.ActivitySource // Optional: without it only Reset re-arms the timer
	Logger *slog.Logger         // Optional
}

// IdleMonitor enforces an inactivity deadline with a single re-armable timer.
//
// Activity signals push the deadline forward; they never queue extra timers.
// The timeout callback runs at most once per Start and disarms the monitor
// before it runs. The timer fires even if no activity can be observed at all.
type IdleMonitor struct {
	clock  clock.Clock
	source ports.ActivitySource
	logger *slog.Logger

	mu          sync.Mutex
	armed       bool
	gen         uint64
	deadline    time.Duration
	onTimeout   func()
	timer       *clock.Timer
	firesAt     time.Time
	unsubscribe func()
}

// NewIdleMonitor constructs an idle IdleMonitor.
func NewIdleMonitor(opts IdleMonitorOptions) *IdleMonitor {
	c := opts.Clock
	if c == nil {
		c = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IdleMonitor{clock: c, source: opts.Source, logger: logger}
}

// Start arms the monitor. A previous arm cycle is cancelled first.
// A non-positive deadline leaves the monitor idle.
func (m *IdleMonitor) Start(deadline time.Duration, onTimeout func()) {
	m.Stop()
	if deadline <= 0 {
		return
	}

	m.mu.Lock()
	m.armed = true
	m.deadline = deadline
	m.onTimeout = onTimeout
	m.armLocked()
	m.mu.Unlock()

	if m.source != nil {
		unsub := m.source.Subscribe(m.onActivity)
		m.mu.Lock()
		if m.armed {
			m.unsubscribe = unsub
			unsub = nil
		}
		m.mu.Unlock()
		// Stopped or fired while subscribing.
		if unsub != nil {
			unsub()
		}
	}
}

// Reset pushes the deadline to now+deadline. It does nothing while idle.
func (m *IdleMonitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.armed {
		return
	}
	m.armLocked()
}

// Stop cancels any pending timer. Safe to call repeatedly.
func (m *IdleMonitor) Stop() {
	m.mu.Lock()
	unsub := m.disarmLocked()
	m.mu.Unlock()
	unsub()
}

// Armed reports whether a timeout is pending.
func (m *IdleMonitor) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.armed
}

// FiresAt returns when the pending timeout will fire.
func (m *IdleMonitor) FiresAt() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firesAt, m.armed
}

func (m *IdleMonitor) onActivity(domainauth.ActivityKind) {
	m.Reset()
}

// armLocked replaces the pending timer. Callers hold m.mu.
func (m *IdleMonitor) armLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	m.gen++
	gen := m.gen
	m.firesAt = m.clock.Now().Add(m.deadline)
	m.timer = m.clock.AfterFunc(m.deadline, func() { m.fire(gen) })
}

// disarmLocked cancels the timer and returns the activity unsubscribe func,
// which must be called without holding m.mu.
func (m *IdleMonitor) disarmLocked() func() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.gen++
	m.armed = false
	m.onTimeout = nil
	m.firesAt = time.Time{}
	unsub := m.unsubscribe
	m.unsubscribe = nil
	if unsub == nil {
		return func() {}
	}
	return unsub
}

func (m *IdleMonitor) fire(gen uint64) {
	m.mu.Lock()
	// A timer that lost a race with Reset or Stop is stale.
	if !m.armed || gen != m.gen {
		m.mu.Unlock()
		return
	}
	cb := m.onTimeout
	deadline := m.deadline
	unsub := m.disarmLocked()
	m.mu.Unlock()

	unsub()
	m.logger.Info("idle deadline reached", "idle_timeout", deadline)
	if cb != nil {
		cb()
	}
}
