package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fmtNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func fmtSession(t *testing.T) (*domain.WorkSession, *domain.WorkType) {
	t.Helper()
	tmpl := &domain.ChecklistTemplate{
		ID:      "t1",
		Name:    "Opening",
		Version: 1,
		Items: []domain.ChecklistItem{
			{ID: "i1", Task: "unlock door", Category: domain.CategoryPreparation, EstimatedMin: 5, OrderIndex: 0},
			{ID: "i2", Task: "lock safe", Category: domain.CategorySafety, EstimatedMin: 5, OrderIndex: 1, Mandatory: true},
		},
	}
	s := domain.StartSession("u1", "w1", tmpl, fmtNow.Add(-2*time.Hour))
	s.ID = "s1"
	require.NoError(t, s.SetItemStatus("i1", domain.ItemCompleted, "", fmtNow.Add(-time.Hour)))

	hourly := int64(10000)
	wt := &domain.WorkType{ID: "w1", UserID: "u1", Name: "Bar Shift", HourlyRate: &hourly, Active: true}
	return s, wt
}

func TestFormatSessionStatus(t *testing.T) {
	s, wt := fmtSession(t)
	earnings := &payroll.Earnings{Amount: 20000, Hours: 2, Basis: domain.BasisHourly}

	out := FormatSessionStatus(s, wt, earnings, fmtNow, time.UTC)
	assert.Contains(t, out, "BAR SHIFT")
	assert.Contains(t, out, "unlock door")
	assert.Contains(t, out, "lock safe")
	assert.Contains(t, out, "2h 0m")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "20,000")
	assert.Contains(t, out, "1 mandatory item(s) outstanding")
}

func TestFormatSessionList(t *testing.T) {
	s, wt := fmtSession(t)
	require.NoError(t, s.Complete("", false, fmtNow))

	out := FormatSessionList([]*domain.WorkSession{s}, map[string]*domain.WorkType{wt.ID: wt}, time.UTC)
	assert.Contains(t, out, "Bar Shift")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "2025-06-15")
}

func TestFormatSalaryList(t *testing.T) {
	s := &domain.Salary{
		PeriodType:  domain.PeriodWeekly,
		PeriodStart: fmtNow.AddDate(0, 0, -6),
		PeriodEnd:   fmtNow.AddDate(0, 0, 1),
		TotalAmount: 120000,
		BasePay:     120000,
		WorkDays:    3,
		TotalHours:  12,
	}
	out := FormatSalaryList([]*domain.Salary{s}, time.UTC)
	assert.Contains(t, out, "weekly")
	assert.Contains(t, out, "120,000")
}
