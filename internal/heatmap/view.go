package heatmap

import (
	"fmt"
	"time"

	"github.com/koit3572/kostudy/internal/domain"
)

// intensities are the five visual steps, lowest to highest, indexed by level.
var intensities = [domain.MaxLevel + 1]string{"none", "light", "medium", "strong", "max"}

// Intensity returns the visual intensity class for a level. Out-of-range
// levels clamp so a bad row degrades to an edge step instead of failing.
func Intensity(level int) string {
	if level < 0 {
		level = 0
	}
	if level > domain.MaxLevel {
		level = domain.MaxLevel
	}
	return intensities[level]
}

// Legend returns the intensity classes in Less→More order.
func Legend() []string {
	return intensities[:]
}

// MonthView is the render-ready form of one month.
type MonthView struct {
	Label string     `json:"label"` // "YYYY.MM"
	Cells []CellView `json:"cells"`
}

// CellView is one rendered grid cell. Blank cells carry no date or level.
type CellView struct {
	Day       int    `json:"day,omitempty"`
	Level     int    `json:"level"`
	Intensity string `json:"intensity"`
	Blank     bool   `json:"blank,omitempty"`
}

// Render maps aggregated months onto view models.
func Render(months []Month) []MonthView {
	views := make([]MonthView, len(months))
	for i, m := range months {
		v := MonthView{
			Label: fmt.Sprintf("%04d.%02d", m.Year, int(m.Month)),
			Cells: make([]CellView, len(m.Cells)),
		}
		for c, cell := range m.Cells {
			if cell.Day == 0 {
				v.Cells[c] = CellView{Blank: true, Intensity: Intensity(0)}
				continue
			}
			v.Cells[c] = CellView{
				Day:       cell.Day,
				Level:     cell.Level,
				Intensity: Intensity(cell.Level),
			}
		}
		views[i] = v
	}
	return views
}

// DefaultBase anchors the window one month before now, matching the initial
// view where the current month sits in the middle of a three-month window.
func DefaultBase(now time.Time) (int, time.Month) {
	return domain.AddMonths(now.Year(), now.Month(), -1)
}

// PrevBase and NextBase shift the window anchor by exactly one month; the
// caller re-queries with the new base.
func PrevBase(year int, month time.Month) (int, time.Month) {
	return domain.AddMonths(year, month, -1)
}

func NextBase(year int, month time.Month) (int, time.Month) {
	return domain.AddMonths(year, month, 1)
}
