package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkTypeFixture(t *testing.T) (WorkTypeService, repository.CategoryRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	categories := repository.NewSQLiteCategoryRepo(database)
	svc := NewWorkTypeService(
		repository.NewSQLiteWorkTypeRepo(database),
		categories,
		repository.NewSQLiteContactRepo(database),
		nil,
	)
	return svc, categories
}

func TestWorkTypeService_CreateWithRates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkTypeFixture(t)

	hourly := int64(12000)
	w := &domain.WorkType{UserID: "u1", Name: "Bar Shift", HourlyRate: &hourly}
	require.NoError(t, svc.Create(ctx, w))
	assert.NotEmpty(t, w.ID)

	stored, err := svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.HourlyRate)
	assert.Equal(t, int64(12000), *stored.HourlyRate)
	assert.Nil(t, stored.DailyRate)
}

func TestWorkTypeService_CreateUnknownCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkTypeFixture(t)

	missing := "missing"
	w := &domain.WorkType{UserID: "u1", Name: "Bar Shift", CategoryID: &missing}
	err := svc.Create(ctx, w)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWorkTypeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkTypeFixture(t)

	w := &domain.WorkType{UserID: "u1", Name: "Bar Shift"}
	require.NoError(t, svc.Create(ctx, w))
	require.NoError(t, svc.Deactivate(ctx, w.ID))

	active, err := svc.ListByUser(ctx, "u1", false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListByUser(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWorkTypeService_Contacts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkTypeFixture(t)

	w := &domain.WorkType{UserID: "u1", Name: "Bar Shift"}
	require.NoError(t, svc.Create(ctx, w))

	require.NoError(t, svc.AddContact(ctx, &domain.EmergencyContact{
		WorkTypeID: w.ID,
		Name:       "Shift Manager",
		Phone:      "010-1234-5678",
		Primary:    true,
	}))
	require.NoError(t, svc.AddContact(ctx, &domain.EmergencyContact{
		WorkTypeID: w.ID,
		Name:       "Owner",
		Phone:      "010-8765-4321",
	}))

	contacts, err := svc.ListContacts(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Shift Manager", contacts[0].Name)
	assert.True(t, contacts[0].Primary)

	require.NoError(t, svc.RemoveContact(ctx, contacts[1].ID))
	contacts, err = svc.ListContacts(ctx, w.ID)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}

func TestWorkTypeService_ContactRejectsUnknownWorkType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newWorkTypeFixture(t)

	err := svc.AddContact(ctx, &domain.EmergencyContact{
		WorkTypeID: "missing",
		Name:       "Shift Manager",
		Phone:      "010-1234-5678",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
