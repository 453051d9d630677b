package payroll

import (
	"testing"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionAt(t *testing.T, userID, wtID string, start time.Time, d time.Duration) *domain.WorkSession {
	t.Helper()
	s := domain.StartSession(userID, wtID, nil, start)
	s.ID = userID + "-" + start.Format(time.RFC3339)
	require.NoError(t, s.Complete("", false, start.Add(d)))
	return s
}

func TestAggregate_SumsCompletedSessionsInWindow(t *testing.T) {
	wt := &domain.WorkType{ID: "wt-1", HourlyRate: rate(10000)}
	types := map[string]*domain.WorkType{"wt-1": wt}
	period := PeriodFor(domain.PeriodWeekly, testNow, time.UTC)

	sessions := []*domain.WorkSession{
		sessionAt(t, "user-1", "wt-1", testNow, 2*time.Hour),
		sessionAt(t, "user-1", "wt-1", testNow.Add(-24*time.Hour), 3*time.Hour),
		sessionAt(t, "user-1", "wt-1", testNow.AddDate(0, 0, 14), time.Hour), // outside window
		sessionAt(t, "user-2", "wt-1", testNow, time.Hour),                   // other user
	}
	open := domain.StartSession("user-1", "wt-1", nil, testNow)
	sessions = append(sessions, open)

	salary, err := Aggregate("user-1", period, sessions, types, time.UTC, DefaultPolicy(), nil)
	require.NoError(t, err)

	assert.EqualValues(t, 50000, salary.BasePay)
	assert.EqualValues(t, 50000, salary.TotalAmount)
	assert.InDelta(t, 5.0, salary.TotalHours, 1e-9)
	assert.Equal(t, 2, salary.WorkDays)
	assert.EqualValues(t, 0, salary.OvertimePay)
	assert.EqualValues(t, 0, salary.Deductions)
}

func TestAggregate_WorkDaysCountDistinctLocalDates(t *testing.T) {
	wt := &domain.WorkType{ID: "wt-1", HourlyRate: rate(100)}
	types := map[string]*domain.WorkType{"wt-1": wt}
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 2025-06-15 16:00 UTC is 2025-06-16 01:00 in Seoul, so these two
	// sessions land on different local dates despite the same UTC date.
	s1 := sessionAt(t, "user-1", "wt-1", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), time.Hour)
	s2 := sessionAt(t, "user-1", "wt-1", time.Date(2025, 6, 15, 16, 0, 0, 0, time.UTC), time.Hour)

	period := Period{Type: domain.PeriodWeekly, Start: time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)}

	inUTC, err := Aggregate("user-1", period, []*domain.WorkSession{s1, s2}, types, time.UTC, DefaultPolicy(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, inUTC.WorkDays)

	inSeoul, err := Aggregate("user-1", period, []*domain.WorkSession{s1, s2}, types, seoul, DefaultPolicy(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, inSeoul.WorkDays)
}

func TestAggregate_IsPure(t *testing.T) {
	wt := &domain.WorkType{ID: "wt-1", HourlyRate: rate(12345)}
	types := map[string]*domain.WorkType{"wt-1": wt}
	period := PeriodFor(domain.PeriodMonthly, testNow, time.UTC)
	sessions := []*domain.WorkSession{
		sessionAt(t, "user-1", "wt-1", testNow, 95*time.Minute),
		sessionAt(t, "user-1", "wt-1", testNow.Add(48*time.Hour), 7*time.Hour+13*time.Minute),
	}

	first, err := Aggregate("user-1", period, sessions, types, time.UTC, DefaultPolicy(), nil)
	require.NoError(t, err)
	second, err := Aggregate("user-1", period, sessions, types, time.UTC, DefaultPolicy(), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs must yield identical output")
}

func TestAggregate_UnknownWorkType(t *testing.T) {
	period := PeriodFor(domain.PeriodDaily, testNow, time.UTC)
	sessions := []*domain.WorkSession{sessionAt(t, "user-1", "ghost", testNow, time.Hour)}
	_, err := Aggregate("user-1", period, sessions, map[string]*domain.WorkType{}, time.UTC, DefaultPolicy(), nil)
	require.ErrorIs(t, err, domain.ErrReferential)
}

type flatOvertime struct{ amount, deduction int64 }

func (f flatOvertime) Apply(s *domain.Salary, _ []*domain.WorkSession) {
	s.OvertimePay = f.amount
	s.Deductions = f.deduction
}

func TestAggregate_OvertimeHook(t *testing.T) {
	wt := &domain.WorkType{ID: "wt-1", HourlyRate: rate(10000)}
	types := map[string]*domain.WorkType{"wt-1": wt}
	period := PeriodFor(domain.PeriodDaily, testNow, time.UTC)
	sessions := []*domain.WorkSession{sessionAt(t, "user-1", "wt-1", testNow, time.Hour)}

	salary, err := Aggregate("user-1", period, sessions, types, time.UTC, DefaultPolicy(), flatOvertime{5000, 1500})
	require.NoError(t, err)
	assert.EqualValues(t, 5000, salary.OvertimePay)
	assert.EqualValues(t, 1500, salary.Deductions)
	assert.EqualValues(t, 10000+5000-1500, salary.TotalAmount)
}

func TestPeriodFor(t *testing.T) {
	// 2025-06-15 is a Sunday.
	anchor := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	day := PeriodFor(domain.PeriodDaily, anchor, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), day.Start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), day.End)

	week := PeriodFor(domain.PeriodWeekly, anchor, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), week.Start, "weeks start on Monday")
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), week.End)

	month := PeriodFor(domain.PeriodMonthly, anchor, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), month.Start)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), month.End)

	assert.True(t, week.Contains(week.Start))
	assert.False(t, week.Contains(week.End), "window end is exclusive")
}
