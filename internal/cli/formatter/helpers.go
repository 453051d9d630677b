package formatter

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "1h 23m" (or "45m" under an hour).
// Seconds only show for sub-minute durations.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

// FormatMoney renders a smallest-unit amount with thousands separators,
// e.g. 1234500 -> "1,234,500".
func FormatMoney(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatRate renders an optional rate, "—" when unset.
func FormatRate(rate *int64) string {
	if rate == nil {
		return "—"
	}
	return FormatMoney(*rate)
}

// FormatClock renders a timestamp as local wall-clock time.
func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// FormatDate renders a timestamp as a local date.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
