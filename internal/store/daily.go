package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/koit3572/kostudy/internal/domain"
)

// GetDaily returns the record for (userID, date) or ErrNotFound.
func (r *SQLRepo) GetDaily(ctx context.Context, userID, date string) (*domain.DailyRecord, error) {
	query := r.db.Rebind(`
		SELECT user_id, study_date, total_minutes, level
		FROM study_daily_logs
		WHERE user_id = ? AND study_date = ?`)

	var rec domain.DailyRecord
	err := r.db.GetContext(ctx, &rec, query, userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get daily record: %w", err)
	}
	return &rec, nil
}

// UpsertDaily writes the record keyed by (user_id, study_date). The conflict
// clause keeps repeated or concurrent writes on a single row.
func (r *SQLRepo) UpsertDaily(ctx context.Context, rec *domain.DailyRecord) error {
	if rec == nil {
		return errors.New("nil record")
	}
	query := r.db.Rebind(`
		INSERT INTO study_daily_logs (user_id, study_date, total_minutes, level, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, study_date) DO UPDATE SET
			total_minutes = excluded.total_minutes,
			level         = excluded.level,
			updated_at    = excluded.updated_at`)

	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.StudyDate, rec.TotalMinutes, rec.Level,
		time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert daily record: %w", err)
	}
	return nil
}

// ListRange returns userID's records with from <= study_date <= to, ordered
// by date. DateLayout strings compare lexicographically, so BETWEEN works.
func (r *SQLRepo) ListRange(ctx context.Context, userID, from, to string) ([]domain.DailyRecord, error) {
	query := r.db.Rebind(`
		SELECT user_id, study_date, total_minutes, level
		FROM study_daily_logs
		WHERE user_id = ? AND study_date BETWEEN ? AND ?
		ORDER BY study_date ASC`)

	var recs []domain.DailyRecord
	if err := r.db.SelectContext(ctx, &recs, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list daily records: %w", err)
	}
	return recs, nil
}
