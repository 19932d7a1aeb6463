// Package session keeps the registry of active study sessions: at most one
// running tracker per user within this process. Duplicate starts are
// deduplicated here; ticks from other processes or devices remain
// last-write-wins at the storage layer.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/store"
	"github.com/koit3572/kostudy/internal/tracker"
)

// Manager starts and stops per-user trackers.
type Manager struct {
	repo     store.Repo
	log      *zap.Logger
	interval time.Duration

	mu     sync.Mutex
	active map[string]*tracker.Tracker
}

func NewManager(repo store.Repo, log *zap.Logger, interval time.Duration) *Manager {
	return &Manager{
		repo:     repo,
		log:      log,
		interval: interval,
		active:   make(map[string]*tracker.Tracker),
	}
}

// Start begins accumulation for userID. Starting an already-active session
// is a no-op; an empty userID is refused. Returns whether a session is
// active after the call.
func (m *Manager) Start(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.active[userID]; ok && t.Running() {
		return true
	}

	t := tracker.New(m.repo, m.log, userID, m.interval)
	t.Start(ctx)
	m.active[userID] = t
	return true
}

// Stop ends userID's session. Safe when no session is active.
func (m *Manager) Stop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.active[userID]; ok {
		t.Stop()
		delete(m.active, userID)
	}
}

// StopAll ends every active session. Used on shutdown.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.active {
		t.Stop()
		delete(m.active, id)
	}
}

// Active reports whether userID currently has a running session.
func (m *Manager) Active(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.active[userID]
	return ok && t.Running()
}
