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

func TestWorkTypeRepo_RoundTripRates(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkTypeRepo(database)
	ctx := context.Background()

	both := testutil.NewTestWorkType("user-1", "Warehouse",
		testutil.WithHourlyRate(12000), testutil.WithDailyRate(90000))
	require.NoError(t, repo.Create(ctx, both))

	none := testutil.NewTestWorkType("user-1", "Volunteer")
	require.NoError(t, repo.Create(ctx, none))

	got, err := repo.GetByID(ctx, both.ID)
	require.NoError(t, err)
	require.NotNil(t, got.HourlyRate)
	assert.EqualValues(t, 12000, *got.HourlyRate)
	require.NotNil(t, got.DailyRate)
	assert.EqualValues(t, 90000, *got.DailyRate)

	bare, err := repo.GetByID(ctx, none.ID)
	require.NoError(t, err)
	assert.Nil(t, bare.HourlyRate)
	assert.Nil(t, bare.DailyRate)
	assert.False(t, bare.HasRate())
}

func TestWorkTypeRepo_ListFiltersInactive(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteWorkTypeRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-1", "Active")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-1", "Retired", testutil.WithWorkTypeInactive())))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-2", "Other user")))

	active, err := repo.ListByUser(ctx, "user-1", false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Active", active[0].Name)

	all, err := repo.ListByUser(ctx, "user-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkTypeRepo_CountByCategory(t *testing.T) {
	database := testutil.NewTestDB(t)
	catRepo := NewSQLiteCategoryRepo(database)
	repo := NewSQLiteWorkTypeRepo(database)
	ctx := context.Background()

	cat := testutil.NewTestCategory("user-1", "Logistics")
	require.NoError(t, catRepo.Create(ctx, cat))

	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-1", "Forklift", testutil.WithCategoryID(cat.ID))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-1", "Picker", testutil.WithCategoryID(cat.ID), testutil.WithWorkTypeInactive())))
	require.NoError(t, repo.Create(ctx, testutil.NewTestWorkType("user-1", "Unrelated")))

	n, err := repo.CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only active work types count against a category")
}

func TestCategoryRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteCategoryRepo(database)
	ctx := context.Background()

	cat := testutil.NewTestCategory("user-1", "Logistics", testutil.WithCategorySortOrder(3))
	require.NoError(t, repo.Create(ctx, cat))

	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Logistics", got.Name)
	assert.Equal(t, 3, got.SortOrder)
	assert.True(t, got.Active)

	got.Active = false
	got.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Update(ctx, got))

	visible, err := repo.ListByUser(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestContactRepo_PrimaryFirst(t *testing.T) {
	database := testutil.NewTestDB(t)
	wtRepo := NewSQLiteWorkTypeRepo(database)
	repo := NewSQLiteContactRepo(database)
	ctx := context.Background()

	wt := seedWorkType(t, wtRepo, "user-1")
	now := time.Now().UTC().Truncate(time.Second)

	backup := &domain.EmergencyContact{ID: uuid.New().String(), WorkTypeID: wt.ID, Name: "Backup", Phone: "1", CreatedAt: now, UpdatedAt: now}
	boss := &domain.EmergencyContact{ID: uuid.New().String(), WorkTypeID: wt.ID, Name: "Supervisor", Phone: "2", Primary: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, backup))
	require.NoError(t, repo.Create(ctx, boss))

	got, err := repo.ListByWorkType(ctx, wt.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Supervisor", got[0].Name, "primary contact sorts first")
}

func TestSettingsRepo_DefaultsForUnknownUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSettingsRepo(database)
	ctx := context.Background()

	got, err := repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", got.UserID)
	assert.Empty(t, got.Timezone)
	assert.Equal(t, "UTC", got.Location().String())

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, &domain.UserSettings{UserID: "nobody", Timezone: "Asia/Seoul", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, &domain.UserSettings{UserID: "nobody", Timezone: "Europe/Berlin", CreatedAt: now, UpdatedAt: now}))

	got, err = repo.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", got.Timezone)
}
