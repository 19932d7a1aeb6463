package domain

import "time"

// DateLayout is the canonical YYYY-MM-DD form study dates are keyed by.
const DateLayout = "2006-01-02"

// DailyRecord is one user's accumulated study time for one calendar date.
// At most one record exists per (UserID, StudyDate); the store enforces it.
type DailyRecord struct {
	UserID       string `db:"user_id" json:"user_id"`
	StudyDate    string `db:"study_date" json:"study_date"` // DateLayout
	TotalMinutes int    `db:"total_minutes" json:"total_minutes"`
	Level        int    `db:"level" json:"level"`
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
