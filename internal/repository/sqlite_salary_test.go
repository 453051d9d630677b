package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSalary(userID string, start time.Time) *domain.Salary {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Salary{
		ID:          uuid.New().String(),
		UserID:      userID,
		PeriodType:  domain.PeriodWeekly,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 0, 7),
		TotalAmount: 50000,
		WorkDays:    3,
		TotalHours:  12.5,
		BasePay:     50000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestSalaryRepo_UpsertReplacesCache(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSalaryRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	first := testSalary("user-1", start)
	require.NoError(t, repo.Upsert(ctx, first))

	rebuilt := testSalary("user-1", start)
	rebuilt.TotalAmount = 75000
	rebuilt.BasePay = 75000
	rebuilt.WorkDays = 4
	require.NoError(t, repo.Upsert(ctx, rebuilt))

	got, err := repo.Get(ctx, "user-1", domain.PeriodWeekly, start)
	require.NoError(t, err)
	assert.EqualValues(t, 75000, got.TotalAmount)
	assert.Equal(t, 4, got.WorkDays)
	assert.Equal(t, first.ID, got.ID, "rebuild keeps the original row id")

	list, err := repo.ListByUser(ctx, "user-1", domain.PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, list, 1, "upsert must not duplicate the period row")
	assert.InDelta(t, 12.5, list[0].TotalHours, 1e-9)
}

func TestSalaryRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSalaryRepo(database)
	_, err := repo.Get(context.Background(), "user-1", domain.PeriodDaily, time.Now())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
