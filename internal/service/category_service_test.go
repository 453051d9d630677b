package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryFixture(t *testing.T) (CategoryService, repository.WorkTypeRepo, *events.Bus) {
	t.Helper()
	database := testutil.NewTestDB(t)
	categories := repository.NewSQLiteCategoryRepo(database)
	workTypes := repository.NewSQLiteWorkTypeRepo(database)
	bus := events.NewBus()
	return NewCategoryService(categories, workTypes, bus), workTypes, bus
}

func TestCategoryService_CreateAssignsIDAndTimestamps(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCategoryFixture(t)

	c := &domain.WorkCategory{UserID: "u1", Name: "Hospitality"}
	require.NoError(t, svc.Create(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.Active)
	assert.False(t, c.CreatedAt.IsZero())

	stored, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hospitality", stored.Name)
}

func TestCategoryService_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCategoryFixture(t)

	err := svc.Create(ctx, &domain.WorkCategory{UserID: "u1"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCategoryService_DeleteBlockedByWorkTypes(t *testing.T) {
	ctx := context.Background()
	svc, workTypes, _ := newCategoryFixture(t)

	c := &domain.WorkCategory{UserID: "u1", Name: "Hospitality"}
	require.NoError(t, svc.Create(ctx, c))

	wt := testutil.NewTestWorkType("u1", "Bar Shift", testutil.WithCategoryID(c.ID))
	require.NoError(t, workTypes.Create(ctx, wt))

	err := svc.Delete(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrReferential)

	// Deactivating is always allowed.
	require.NoError(t, svc.Deactivate(ctx, c.ID))
	stored, err := svc.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	// An archived work type still references the category. The delete
	// stays blocked with the same error, not a raw constraint failure.
	wt.Active = false
	require.NoError(t, workTypes.Update(ctx, wt))
	err = svc.Delete(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrReferential)

	// Only removing the work type row itself frees the category.
	require.NoError(t, workTypes.Delete(ctx, wt.ID))
	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryService_PublishesChanges(t *testing.T) {
	ctx := context.Background()
	svc, _, bus := newCategoryFixture(t)
	ch, cancel := bus.Subscribe()
	defer cancel()

	c := &domain.WorkCategory{UserID: "u1", Name: "Hospitality"}
	require.NoError(t, svc.Create(ctx, c))

	change := <-ch
	assert.Equal(t, events.EntityCategory, change.Entity)
	assert.Equal(t, events.EventInsert, change.Event)
	assert.Equal(t, c.ID, change.ID)
}
