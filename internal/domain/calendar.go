package domain

import (
	"fmt"
	"time"
)

// MatrixCells is the fixed cell count of a month matrix: 6 weeks of 7 days.
const MatrixCells = 42

// MonthMatrix is the 6×7 layout of one calendar month. Cells holds the day
// of month (1..31) for populated cells and 0 for leading/trailing padding.
type MonthMatrix struct {
	Year  int
	Month time.Month
	Cells [MatrixCells]int
}

// FirstWeekday returns the weekday index (Sunday = 0) of the 1st of the month.
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DaysIn returns the number of days in the month. Day 0 of the following
// month normalizes to the last day, so leap years come out right.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NewMonthMatrix lays out a month: FirstWeekday leading blanks, one cell per
// day, then trailing blanks up to MatrixCells.
func NewMonthMatrix(year int, month time.Month) MonthMatrix {
	m := MonthMatrix{Year: year, Month: month}
	offset := FirstWeekday(year, month)
	for d := 1; d <= DaysIn(year, month); d++ {
		m.Cells[offset+d-1] = d
	}
	return m
}

// DateKey formats a cell's date in DateLayout.
func (m MonthMatrix) DateKey(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
}

// AddMonths shifts (year, month) by delta months, rolling over years in
// either direction.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// WindowRange returns the inclusive DateLayout bounds covered by a window of
// monthCount months starting at (year, month): the first day of the first
// month through the last day of the last month.
func WindowRange(year int, month time.Month, monthCount int) (from, to string) {
	if monthCount < 1 {
		monthCount = 1
	}
	lastY, lastM := AddMonths(year, month, monthCount-1)
	from = fmt.Sprintf("%04d-%02d-01", year, int(month))
	to = fmt.Sprintf("%04d-%02d-%02d", lastY, int(lastM), DaysIn(lastY, lastM))
	return from, to
}
