package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/logger"
)

const (
	// DefaultSessionIdleTTL is how long a session may stay unused in memory
	DefaultSessionIdleTTL = time.Hour
	// DefaultSessionGCInterval is the sweep period
	DefaultSessionGCInterval = 10 * time.Minute
)

// Sweeper drops idle sessions and reports how many it dropped.
type Sweeper interface {
	Sweep(idle time.Duration, now time.Time) int
	Active() int
}

// SessionCollector periodically evicts idle visitor sessions from memory.
// Persisted state is never touched.
type SessionCollector struct {
	sessions Sweeper
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	onSweep  func(dropped int)
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(
	sessions Sweeper,
	log logger.Logger,
	interval time.Duration,
	idleTTL time.Duration,
) *SessionCollector {
	if interval <= 0 {
		interval = DefaultSessionGCInterval
	}
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}

	return &SessionCollector{
		sessions: sessions,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// OnSweep registers a hook called after every collection.
func (sc *SessionCollector) OnSweep(fn func(dropped int)) {
	sc.onSweep = fn
}

// Start begins the periodic collection
func (sc *SessionCollector) Start(ctx context.Context) error {
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect(time.Now())
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (sc *SessionCollector) Stop() {
	close(sc.stopCh)
}

// Collect evicts sessions idle since before now minus the idle TTL.
func (sc *SessionCollector) Collect(now time.Time) int {
	dropped := sc.sessions.Sweep(sc.idleTTL, now)

	if dropped > 0 {
		sc.logger.Info("evicted idle sessions",
			logger.Int("dropped", dropped),
			logger.Int("active", sc.sessions.Active()),
			logger.Duration("idle_ttl", sc.idleTTL))
	} else {
		sc.logger.Debug("no idle sessions to evict")
	}

	if sc.onSweep != nil {
		sc.onSweep(dropped)
	}

	return dropped
}
