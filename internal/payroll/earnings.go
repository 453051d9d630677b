// Package payroll computes session earnings and salary period aggregates.
// Everything here is a pure function of its inputs; callers persist results.
package payroll

import (
	"math"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
)

// Policy controls the ambiguous knobs of pay computation.
type Policy struct {
	// FullDayMin is the wall-clock threshold at which a configured daily
	// rate applies flat, regardless of overshoot.
	FullDayMin int

	// UnpaidPauses subtracts accumulated pause time from payable hours.
	// Off by default: paused time counts toward pay.
	UnpaidPauses bool
}

// DefaultPolicy matches the observed behavior: 8h full day, paid pauses.
func DefaultPolicy() Policy {
	return Policy{FullDayMin: 480, UnpaidPauses: false}
}

// Warning is a non-fatal earnings annotation.
type Warning string

// WarningMissingRate flags a work type with neither an hourly nor a daily
// rate; earnings default to zero.
const WarningMissingRate Warning = "missing_rate"

// Earnings is the pay computed for one completed session.
type Earnings struct {
	Amount   int64 // smallest currency unit
	Hours    float64
	Basis    domain.RateBasis
	Warnings []Warning
}

// Calculate computes pay for a completed session against its work type's
// rate policy. Only completed sessions earn; anything else is an
// ErrInvalidState.
func Calculate(s *domain.WorkSession, wt *domain.WorkType, policy Policy) (Earnings, error) {
	if s.Status != domain.SessionCompleted || s.EndedAt == nil {
		return Earnings{}, domain.InvalidStatef("earnings require a completed session, got %s", s.Status)
	}

	payable := payableDuration(s, policy)
	hours := payable.Seconds() / 3600

	basis := selectBasis(wt, payable, policy)
	switch basis {
	case domain.BasisDaily:
		return Earnings{Amount: *wt.DailyRate, Hours: hours, Basis: basis}, nil
	case domain.BasisHourly:
		return Earnings{Amount: roundHalfUp(float64(*wt.HourlyRate) * hours), Hours: hours, Basis: basis}, nil
	default:
		e := Earnings{Amount: 0, Hours: hours, Basis: domain.BasisNone}
		if !wt.HasRate() {
			e.Warnings = append(e.Warnings, WarningMissingRate)
		}
		return e, nil
	}
}

// selectBasis is the single place the hourly/daily precedence rule lives:
// a daily rate applies when the payable duration reaches the full-day
// threshold, otherwise the hourly rate, otherwise none.
func selectBasis(wt *domain.WorkType, payable time.Duration, policy Policy) domain.RateBasis {
	threshold := time.Duration(policy.FullDayMin) * time.Minute
	if wt.DailyRate != nil && payable >= threshold {
		return domain.BasisDaily
	}
	if wt.HourlyRate != nil {
		return domain.BasisHourly
	}
	// A daily-only work type under the threshold earns nothing; the day
	// rate is flat and only unlocks at the threshold.
	return domain.BasisNone
}

func payableDuration(s *domain.WorkSession, policy Policy) time.Duration {
	d := s.EndedAt.Sub(s.StartedAt)
	if policy.UnpaidPauses {
		d -= time.Duration(s.PausedSec) * time.Second
	}
	if d < 0 {
		return 0
	}
	return d
}

// roundHalfUp rounds to the nearest integer unit with halves rounding up.
// Applied only at the final multiplication to avoid drift.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
