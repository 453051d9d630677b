package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checklistFixture struct {
	svc       ChecklistService
	templates repository.TemplateRepo
	workTypes repository.WorkTypeRepo
	database  *sql.DB
}

func newChecklistFixture(t *testing.T) *checklistFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	templates := repository.NewSQLiteTemplateRepo(database)
	workTypes := repository.NewSQLiteWorkTypeRepo(database)
	return &checklistFixture{
		svc:       NewChecklistService(templates, workTypes, testutil.NewTestUoW(database), nil),
		templates: templates,
		workTypes: workTypes,
		database:  database,
	}
}

func (f *checklistFixture) seedWorkType(t *testing.T) *domain.WorkType {
	t.Helper()
	wt := testutil.NewTestWorkType("u1", "Bar Shift")
	require.NoError(t, f.workTypes.Create(context.Background(), wt))
	return wt
}

func TestChecklistService_CreateRetiresCurrentActive(t *testing.T) {
	ctx := context.Background()
	f := newChecklistFixture(t)
	wt := f.seedWorkType(t)

	first := testutil.NewTestTemplate(wt.ID, "Opening v1", testutil.WithItems("unlock"))
	require.NoError(t, f.svc.CreateTemplate(ctx, first))

	second := testutil.NewTestTemplate(wt.ID, "Opening v2", testutil.WithItems("unlock", "count till"))
	require.NoError(t, f.svc.CreateTemplate(ctx, second))

	active, err := f.svc.GetActiveTemplate(ctx, wt.ID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	old, err := f.svc.GetTemplate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.Active)
}

func TestChecklistService_CreateUnknownWorkType(t *testing.T) {
	ctx := context.Background()
	f := newChecklistFixture(t)

	tmpl := testutil.NewTestTemplate("missing", "Opening")
	err := f.svc.CreateTemplate(ctx, tmpl)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChecklistService_ItemOps(t *testing.T) {
	ctx := context.Background()
	f := newChecklistFixture(t)
	wt := f.seedWorkType(t)

	tmpl := testutil.NewTestTemplate(wt.ID, "Opening", testutil.WithItems("unlock", "lights"))
	require.NoError(t, f.svc.CreateTemplate(ctx, tmpl))

	updated, err := f.svc.AddItem(ctx, tmpl.ID, domain.ChecklistItem{
		Task:         "count till",
		Category:     domain.CategoryExecution,
		EstimatedMin: 15,
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 3)
	assert.Equal(t, 2, updated.Version)

	added := updated.SortedItems()[2]
	assert.Equal(t, "count till", added.Task)
	assert.NotEmpty(t, added.ID)

	updated, err = f.svc.ReorderItem(ctx, tmpl.ID, added.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Version)
	assert.Equal(t, "count till", updated.SortedItems()[0].Task)

	updated, err = f.svc.RemoveItem(ctx, tmpl.ID, added.ID)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, 4, updated.Version)

	// Persisted state matches the returned one.
	stored, err := f.svc.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Version)
	assert.Len(t, stored.Items, 2)
}

func TestChecklistService_ItemOpRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	f := newChecklistFixture(t)
	wt := f.seedWorkType(t)

	tmpl := testutil.NewTestTemplate(wt.ID, "Opening", testutil.WithItems("unlock", "lights"))
	require.NoError(t, f.svc.CreateTemplate(ctx, tmpl))

	boom := errors.New("disk full")
	failing := &testutil.FailOnNthExecUoW{DB: f.database, FailOn: 3, Err: boom}
	svc := NewChecklistService(f.templates, f.workTypes, failing, nil)

	_, err := svc.AddItem(ctx, tmpl.ID, domain.ChecklistItem{
		Task:         "count till",
		Category:     domain.CategoryExecution,
		EstimatedMin: 15,
	})
	require.ErrorIs(t, err, boom)

	// The failed transaction left the template untouched.
	stored, err := f.svc.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Len(t, stored.Items, 2)
}
