package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koit3572/kostudy/internal/domain"
)

func setupRepo(t *testing.T) *SQLRepo {
	t.Helper()
	repo, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGetDaily_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetDaily(context.Background(), uuid.NewString(), "2024-03-01")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertDaily_InsertThenOverwrite(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	rec := &domain.DailyRecord{
		UserID:       userID,
		StudyDate:    "2024-03-01",
		TotalMinutes: 1,
		Level:        domain.Level(1),
	}
	require.NoError(t, repo.UpsertDaily(ctx, rec))

	got, err := repo.GetDaily(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalMinutes)
	assert.Equal(t, 0, got.Level)

	// same key again: fields overwritten, still one row
	rec.TotalMinutes = 41
	rec.Level = domain.Level(41)
	require.NoError(t, repo.UpsertDaily(ctx, rec))

	got, err = repo.GetDaily(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 41, got.TotalMinutes)
	assert.Equal(t, 2, got.Level)

	var count int
	err = repo.db.Get(&count,
		`SELECT COUNT(*) FROM study_daily_logs WHERE user_id = ? AND study_date = ?`,
		userID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListRange(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	userID := uuid.NewString()

	seed := map[string]int{
		"2024-01-31": 25,
		"2024-02-01": 100,
		"2024-02-29": 45, // leap day
		"2024-04-30": 200,
		"2024-05-01": 10, // outside
	}
	for date, mins := range seed {
		require.NoError(t, repo.UpsertDaily(ctx, &domain.DailyRecord{
			UserID:       userID,
			StudyDate:    date,
			TotalMinutes: mins,
			Level:        domain.Level(mins),
		}))
	}
	// another user's rows must not leak into the range
	require.NoError(t, repo.UpsertDaily(ctx, &domain.DailyRecord{
		UserID:       uuid.NewString(),
		StudyDate:    "2024-02-10",
		TotalMinutes: 60,
		Level:        domain.Level(60),
	}))

	recs, err := repo.ListRange(ctx, userID, "2024-02-01", "2024-04-30")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "2024-02-01", recs[0].StudyDate)
	assert.Equal(t, "2024-02-29", recs[1].StudyDate)
	assert.Equal(t, "2024-04-30", recs[2].StudyDate)
	for _, rec := range recs {
		assert.Equal(t, domain.Level(rec.TotalMinutes), rec.Level)
	}
}

func TestListRange_Empty(t *testing.T) {
	repo := setupRepo(t)

	recs, err := repo.ListRange(context.Background(), uuid.NewString(), "2024-02-01", "2024-04-30")
	require.NoError(t, err)
	assert.Empty(t, recs)
}
