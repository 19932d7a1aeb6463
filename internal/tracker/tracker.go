// Package tracker implements the per-session study-time accumulator: a
// ticker-driven loop that advances the active user's today-record by one
// minute-equivalent per interval and keeps the derived level in sync.
package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/domain"
	"github.com/koit3572/kostudy/internal/store"
)

// Tracker accumulates study time for one user while a session is active.
// The identity is fixed at construction; there is no ambient auth state.
type Tracker struct {
	repo     store.Repo
	log      *zap.Logger
	userID   string
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Tracker for the given user. An empty userID produces a
// tracker that refuses to start.
func New(repo store.Repo, log *zap.Logger, userID string, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Tracker{
		repo:     repo,
		log:      log,
		userID:   userID,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the interval loop. It is a no-op when the tracker has no
// identity or is already running. The loop stops when ctx is canceled or
// Stop is called.
func (t *Tracker) Start(ctx context.Context) {
	if t.userID == "" {
		t.log.Warn("tracker not started: no user identity")
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	log := t.log.With(
		zap.String("user_id", t.userID),
		zap.String("session_id", uuid.NewString()),
	)
	log.Info("tracker started", zap.Duration("interval", t.interval))

	go t.run(ctx, log)
}

// Stop cancels the interval loop so no further ticks fire. A tick already in
// flight completes or fails on its own; it is not awaited. Safe to call
// multiple times and before Start.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.cancel = nil
}

// Running reports whether the interval loop is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}

func (t *Tracker) run(ctx context.Context, log *zap.Logger) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("tracker stopped")
			return
		case <-ticker.C:
			// Dispatch so slow storage never delays the schedule; a tick
			// may overlap a still-pending previous one.
			go t.tick(ctx, log)
		}
	}
}

// tick performs one read-increment-upsert cycle. State is always re-derived
// from storage, so a failed tick is dropped and the next one self-heals.
func (t *Tracker) tick(ctx context.Context, log *zap.Logger) {
	today := domain.DateOf(t.now())

	prev := 0
	rec, err := t.repo.GetDaily(ctx, t.userID, today)
	switch {
	case err == nil:
		prev = rec.TotalMinutes
	case errors.Is(err, store.ErrNotFound):
		// first tick of the day
	default:
		log.Error("read daily record failed", zap.Error(err))
		return
	}

	next := prev + 1
	upd := &domain.DailyRecord{
		UserID:       t.userID,
		StudyDate:    today,
		TotalMinutes: next,
		Level:        domain.Level(next),
	}
	if err := t.repo.UpsertDaily(ctx, upd); err != nil {
		log.Error("upsert daily record failed", zap.Error(err))
	}
}
