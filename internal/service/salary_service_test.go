package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var salaryNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

type salaryFixture struct {
	svc       SalaryService
	sessions  repository.SessionRepo
	workTypes repository.WorkTypeRepo
	settings  repository.SettingsRepo
}

func newSalaryFixture(t *testing.T, overtime OvertimeResolver) *salaryFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &salaryFixture{
		sessions:  repository.NewSQLiteSessionRepo(database),
		workTypes: repository.NewSQLiteWorkTypeRepo(database),
		settings:  repository.NewSQLiteSettingsRepo(database),
	}
	f.svc = NewSalaryService(
		repository.NewSQLiteSalaryRepo(database),
		f.sessions,
		f.workTypes,
		f.settings,
		payroll.DefaultPolicy(),
		overtime,
		nil,
	)
	return f
}

func (f *salaryFixture) seedCompleted(t *testing.T, wt *domain.WorkType, start time.Time, d time.Duration) {
	t.Helper()
	s := testutil.NewCompletedSession("u1", wt.ID, start, d)
	require.NoError(t, f.sessions.Create(context.Background(), s))
}

func TestSalaryService_RebuildWeekly(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t, nil)

	wt := testutil.NewTestWorkType("u1", "Bar Shift", testutil.WithHourlyRate(10000))
	require.NoError(t, f.workTypes.Create(ctx, wt))

	f.seedCompleted(t, wt, salaryNow, 2*time.Hour)
	f.seedCompleted(t, wt, salaryNow.Add(-24*time.Hour), 3*time.Hour)

	salary, err := f.svc.Rebuild(ctx, "u1", domain.PeriodWeekly, salaryNow)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), salary.TotalAmount)
	assert.Equal(t, int64(50000), salary.BasePay)
	assert.Equal(t, 2, salary.WorkDays)
	assert.InDelta(t, 5.0, salary.TotalHours, 1e-9)

	// The cached row matches the rebuilt aggregate.
	cached, err := f.svc.Get(ctx, "u1", domain.PeriodWeekly, salaryNow)
	require.NoError(t, err)
	assert.Equal(t, salary.TotalAmount, cached.TotalAmount)
	assert.Equal(t, salary.PeriodStart.Unix(), cached.PeriodStart.Unix())
}

func TestSalaryService_RebuildIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t, nil)

	wt := testutil.NewTestWorkType("u1", "Bar Shift", testutil.WithHourlyRate(10000))
	require.NoError(t, f.workTypes.Create(ctx, wt))
	f.seedCompleted(t, wt, salaryNow, 2*time.Hour)

	first, err := f.svc.Rebuild(ctx, "u1", domain.PeriodDaily, salaryNow)
	require.NoError(t, err)
	second, err := f.svc.Rebuild(ctx, "u1", domain.PeriodDaily, salaryNow)
	require.NoError(t, err)

	assert.Equal(t, first.TotalAmount, second.TotalAmount)
	assert.Equal(t, first.WorkDays, second.WorkDays)

	rows, err := f.svc.ListByUser(ctx, "u1", domain.PeriodDaily)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSalaryService_RebuildUsesUserTimezone(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t, nil)

	require.NoError(t, f.settings.Upsert(ctx, &domain.UserSettings{
		UserID:   "u1",
		Timezone: "Asia/Seoul",
	}))

	wt := testutil.NewTestWorkType("u1", "Bar Shift", testutil.WithHourlyRate(10000))
	require.NoError(t, f.workTypes.Create(ctx, wt))

	// 2025-06-15 16:00 UTC is already 2025-06-16 01:00 in Seoul, so a daily
	// rebuild anchored at UTC noon the next day picks it up.
	f.seedCompleted(t, wt, salaryNow.Add(7*time.Hour), time.Hour)

	salary, err := f.svc.Rebuild(ctx, "u1", domain.PeriodDaily, salaryNow.Add(27*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), salary.TotalAmount)
	assert.Equal(t, 1, salary.WorkDays)
}

type flatBonus struct {
	amount int64
}

func (b flatBonus) Apply(s *domain.Salary, _ []*domain.WorkSession) {
	s.OvertimePay += b.amount
}

func TestSalaryService_RebuildAppliesOvertimeResolver(t *testing.T) {
	ctx := context.Background()
	resolver := func(pt domain.PeriodType) payroll.OvertimePolicy {
		if pt == domain.PeriodMonthly {
			return flatBonus{amount: 5000}
		}
		return nil
	}
	f := newSalaryFixture(t, resolver)

	wt := testutil.NewTestWorkType("u1", "Bar Shift", testutil.WithHourlyRate(10000))
	require.NoError(t, f.workTypes.Create(ctx, wt))
	f.seedCompleted(t, wt, salaryNow, time.Hour)

	monthly, err := f.svc.Rebuild(ctx, "u1", domain.PeriodMonthly, salaryNow)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), monthly.TotalAmount)

	daily, err := f.svc.Rebuild(ctx, "u1", domain.PeriodDaily, salaryNow)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), daily.TotalAmount)
}

func TestSalaryService_GetMissingPeriod(t *testing.T) {
	ctx := context.Background()
	f := newSalaryFixture(t, nil)

	_, err := f.svc.Get(ctx, "u1", domain.PeriodWeekly, salaryNow)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
