package store

import (
	"context"
	"errors"

	"github.com/koit3572/kostudy/internal/domain"
)

// ErrNotFound is returned when no daily record exists for a (user, date) key.
var ErrNotFound = errors.New("daily record not found")

// Repo defines storage operations for per-user, per-day study records.
type Repo interface {
	// GetDaily returns the record for (userID, date) or ErrNotFound.
	GetDaily(ctx context.Context, userID, date string) (*domain.DailyRecord, error)

	// UpsertDaily creates or overwrites the record keyed by
	// (rec.UserID, rec.StudyDate). Concurrent writers converge on a single
	// row; the last write wins.
	UpsertDaily(ctx context.Context, rec *domain.DailyRecord) error

	// ListRange returns all records for userID with from <= study_date <= to
	// (DateLayout strings), ordered by date ascending.
	ListRange(ctx context.Context, userID, from, to string) ([]domain.DailyRecord, error)

	Close() error
}
