// Package heatmap builds the multi-month study calendar: month matrices with
// a stored level attached to each in-range day, plus the view models the
// rendering side consumes.
package heatmap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/koit3572/kostudy/internal/domain"
	"github.com/koit3572/kostudy/internal/store"
)

// Month is one month of the window: the calendar layout and a level per cell.
type Month struct {
	Year  int                      `json:"year"`
	Month time.Month               `json:"month"`
	Cells [domain.MatrixCells]Cell `json:"cells"`
}

// Cell is one grid position. Day is 0 for padding cells.
type Cell struct {
	Day   int `json:"day"`
	Level int `json:"level"`
}

// Service aggregates stored daily records into heatmap windows. Read-only.
type Service struct {
	repo   store.Repo
	log    *zap.Logger
	months int
}

// NewService creates an aggregator with the configured window size, used
// when a caller does not ask for an explicit month count.
func NewService(repo store.Repo, log *zap.Logger, months int) *Service {
	if months < 1 {
		months = 1
	}
	return &Service{repo: repo, log: log, months: months}
}

// WindowMonths returns the configured window size.
func (s *Service) WindowMonths() int { return s.months }

// BuildWindow returns monthCount matrices starting at (year, month), with
// levels resolved from storage via a single range query. An empty userID
// yields the layout with every level 0 and no storage call. Stored levels
// are trusted as written; they are not recomputed here.
func (s *Service) BuildWindow(ctx context.Context, userID string, year int, month time.Month, monthCount int) ([]Month, error) {
	if monthCount < 1 {
		monthCount = s.months
	}

	months := EmptyWindow(year, month, monthCount)
	if userID == "" {
		return months, nil
	}

	from, to := domain.WindowRange(year, month, monthCount)
	recs, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	levels := make(map[string]int, len(recs))
	for _, rec := range recs {
		levels[rec.StudyDate] = rec.Level
	}

	for i := range months {
		matrix := domain.NewMonthMatrix(months[i].Year, months[i].Month)
		for c, day := range matrix.Cells {
			if day == 0 {
				continue
			}
			months[i].Cells[c].Level = levels[matrix.DateKey(day)]
		}
	}
	return months, nil
}

// EmptyWindow lays out monthCount months from (year, month) with all levels
// zero. It is also the degraded result when storage is unavailable.
func EmptyWindow(year int, month time.Month, monthCount int) []Month {
	if monthCount < 1 {
		monthCount = 1
	}
	months := make([]Month, monthCount)
	for i := range months {
		y, m := domain.AddMonths(year, month, i)
		months[i] = Month{Year: y, Month: m}
		matrix := domain.NewMonthMatrix(y, m)
		for c, day := range matrix.Cells {
			months[i].Cells[c] = Cell{Day: day}
		}
	}
	return months
}
