package payroll

import (
	"time"

	"github.com/alexanderramin/turno/internal/domain"
)

// OvertimePolicy is a pass-through hook for employer-specific overtime and
// deduction rules. The default (nil) leaves both at zero.
type OvertimePolicy interface {
	Apply(salary *domain.Salary, sessions []*domain.WorkSession)
}

// Aggregate rolls completed sessions up into one salary record for the
// period. Sessions are selected by start timestamp in [Start, End); earnings
// are recomputed per session via Calculate, never read from a cache. The
// function has no side effects and is safe to recompute.
func Aggregate(
	userID string,
	period Period,
	sessions []*domain.WorkSession,
	workTypes map[string]*domain.WorkType,
	loc *time.Location,
	policy Policy,
	overtime OvertimePolicy,
) (*domain.Salary, error) {
	salary := &domain.Salary{
		UserID:      userID,
		PeriodType:  period.Type,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	}

	days := make(map[string]bool)
	var selected []*domain.WorkSession
	for _, s := range sessions {
		if s.UserID != userID || s.Status != domain.SessionCompleted {
			continue
		}
		if !period.Contains(s.StartedAt) {
			continue
		}
		wt, ok := workTypes[s.WorkTypeID]
		if !ok {
			return nil, domain.Referentialf("session %s references unknown work type %s", s.ID, s.WorkTypeID)
		}
		e, err := Calculate(s, wt, policy)
		if err != nil {
			return nil, err
		}
		salary.BasePay += e.Amount
		salary.TotalHours += e.Hours
		days[s.StartedAt.In(loc).Format("2006-01-02")] = true
		selected = append(selected, s)
	}

	salary.WorkDays = len(days)
	if overtime != nil {
		overtime.Apply(salary, selected)
	}
	salary.TotalAmount = salary.BasePay + salary.OvertimePay - salary.Deductions
	return salary, nil
}
