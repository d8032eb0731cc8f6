package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/logger"
)

// Transition mutates a visitor's state and reports the persisted keys it
// changed. On error it must leave the state untouched.
type Transition func(state *domain.ClientState) (domain.Changes, error)

// Manager owns the in-memory state of every active visitor. Events for one
// visitor run one at a time, to completion; visitors are independent.
type Manager struct {
	storage      Storage
	persister    Persister
	logger       logger.Logger
	historyLimit int

	mu       sync.Mutex
	sessions map[string]*session // visitorID -> session

	persistFailures atomic.Int64
	heldWrites      atomic.Int64
	lastPersistErr  atomic.Value // string
}

type session struct {
	mu       sync.Mutex
	state    *domain.ClientState
	unread   domain.Changes // keys storage failed to return; never persisted
	evicted  bool
	lastSeen atomic.Int64 // unix nano
}

// Options configures a Manager.
type Options struct {
	// HistoryLimit caps the history log; 0 keeps everything.
	HistoryLimit int
	// Persister defaults to a StoragePersister on the same storage.
	Persister Persister
}

// NewManager creates a session manager
func NewManager(storage Storage, log logger.Logger, opts Options) *Manager {
	p := opts.Persister
	if p == nil {
		p = NewStoragePersister(storage)
	}

	return &Manager{
		storage:      storage,
		persister:    p,
		logger:       log,
		historyLimit: opts.HistoryLimit,
		sessions:     make(map[string]*session),
	}
}

// Do runs fn against the visitor's state. The state is loaded from storage
// on first access. Changed keys are persisted before Do returns; a failed
// write is logged and the in-memory state is kept. The returned state is a
// copy.
func (m *Manager) Do(ctx context.Context, visitorID string, fn Transition) (*domain.ClientState, error) {
	var (
		state *domain.ClientState
		err   error
	)
	m.locked(visitorID, func(s *session) {
		state, err = m.run(ctx, visitorID, s, fn)
	})
	return state, err
}

// Forget deletes the visitor's persisted values and resets the session to
// the defaults. On a storage error nothing changes.
func (m *Manager) Forget(ctx context.Context, visitorID string) (*domain.ClientState, error) {
	var (
		state *domain.ClientState
		err   error
	)
	m.locked(visitorID, func(s *session) {
		if derr := m.storage.Delete(ctx, visitorID); derr != nil {
			err = fmt.Errorf("failed to forget visitor %s: %w", visitorID, derr)
			return
		}
		s.state = domain.NewClientState()
		s.state.HistoryLimit = m.historyLimit
		s.unread = domain.NoChanges
		state = s.state.Clone()
	})
	return state, err
}

// locked runs fn holding the visitor's session lock.
func (m *Manager) locked(visitorID string, fn func(s *session)) {
	for {
		s := m.acquire(visitorID)

		s.mu.Lock()
		if s.evicted {
			// swept while we waited; pick up the fresh entry
			s.mu.Unlock()
			continue
		}

		fn(s)
		s.mu.Unlock()
		return
	}
}

// State returns a copy of the visitor's current state.
func (m *Manager) State(ctx context.Context, visitorID string) *domain.ClientState {
	state, _ := m.Do(ctx, visitorID, func(*domain.ClientState) (domain.Changes, error) {
		return domain.NoChanges, nil
	})
	return state
}

func (m *Manager) run(ctx context.Context, visitorID string, s *session, fn Transition) (*domain.ClientState, error) {
	if s.state == nil {
		s.state, s.unread = Load(ctx, m.storage, visitorID, m.logger)
		s.state.HistoryLimit = m.historyLimit
	} else if s.unread != domain.NoChanges {
		s.unread = Reload(ctx, m.storage, visitorID, s.state, s.unread, m.logger)
	}

	changes, err := fn(s.state)
	if err != nil {
		return s.state.Clone(), err
	}

	if held := changes & s.unread; held != domain.NoChanges {
		m.heldWrites.Add(1)
		m.logger.Warn("keeping unloaded keys in memory only",
			logger.String("visitor_id", visitorID),
			logger.Strings("keys", keyNames(held)))
		changes &^= s.unread
	}

	if changes != domain.NoChanges {
		if perr := m.persister.Persist(ctx, visitorID, s.state, changes); perr != nil {
			m.persistFailures.Add(1)
			m.lastPersistErr.Store(perr.Error())
			m.logger.Error("failed to persist visitor state",
				logger.String("visitor_id", visitorID),
				logger.Error(perr))
		}
	}

	return s.state.Clone(), nil
}

func (m *Manager) acquire(visitorID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[visitorID]
	if !ok {
		s = &session{}
		m.sessions[visitorID] = s
	}
	s.lastSeen.Store(time.Now().UnixNano())
	return s
}

// Sweep drops sessions idle for longer than idle. Busy sessions are
// skipped. Persisted state is untouched. It returns the number dropped.
func (m *Manager) Sweep(idle time.Duration, now time.Time) int {
	cutoff := now.Add(-idle).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, s := range m.sessions {
		if s.lastSeen.Load() > cutoff {
			continue
		}
		if !s.mu.TryLock() {
			continue
		}
		s.evicted = true
		s.mu.Unlock()
		delete(m.sessions, id)
		dropped++
	}
	return dropped
}

// Active returns the number of sessions held in memory.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

// Stats summarises persistence health for /infra.
type Stats struct {
	ActiveSessions  int    `json:"active_sessions"`
	PersistFailures int64  `json:"persist_failures"`
	HeldWrites      int64  `json:"held_writes"`
	LastPersistErr  string `json:"last_persist_error,omitempty"`
}

// Stats returns a snapshot of the manager counters.
func (m *Manager) Stats() Stats {
	st := Stats{
		ActiveSessions:  m.Active(),
		PersistFailures: m.persistFailures.Load(),
		HeldWrites:      m.heldWrites.Load(),
	}
	if v, ok := m.lastPersistErr.Load().(string); ok {
		st.LastPersistErr = v
	}
	return st
}
