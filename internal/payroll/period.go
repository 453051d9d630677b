package payroll

import (
	"time"

	"github.com/alexanderramin/turno/internal/domain"
)

// Period is a half-open [Start, End) salary window in a concrete location.
type Period struct {
	Type  domain.PeriodType
	Start time.Time
	End   time.Time
}

// Contains reports whether ts falls inside the window.
func (p Period) Contains(ts time.Time) bool {
	return !ts.Before(p.Start) && ts.Before(p.End)
}

// PeriodFor returns the daily, weekly (Monday-start) or monthly window
// containing anchor, computed in loc.
func PeriodFor(pt domain.PeriodType, anchor time.Time, loc *time.Location) Period {
	a := anchor.In(loc)
	switch pt {
	case domain.PeriodWeekly:
		// time.Weekday makes Sunday 0; shift so Monday starts the week.
		offset := (int(a.Weekday()) + 6) % 7
		start := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -offset)
		return Period{Type: pt, Start: start, End: start.AddDate(0, 0, 7)}
	case domain.PeriodMonthly:
		start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, loc)
		return Period{Type: pt, Start: start, End: start.AddDate(0, 1, 0)}
	default:
		start := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, loc)
		return Period{Type: domain.PeriodDaily, Start: start, End: start.AddDate(0, 0, 1)}
	}
}
