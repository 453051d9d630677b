package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepo_RoundTripKeepsOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	wtRepo := NewSQLiteWorkTypeRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	wt := seedWorkType(t, wtRepo, "user-1")
	tmpl := testutil.NewTestTemplate(wt.ID, "Opening", testutil.WithItems("First", "Second", "Third"))
	require.NoError(t, repo.Create(ctx, tmpl))

	got, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "First", got.Items[0].Task)
	assert.Equal(t, "Third", got.Items[2].Task)
	assert.Equal(t, 1, got.Version)
}

func TestTemplateRepo_UpdateRewritesItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	wtRepo := NewSQLiteWorkTypeRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	wt := seedWorkType(t, wtRepo, "user-1")
	tmpl := testutil.NewTestTemplate(wt.ID, "Opening", testutil.WithItems("A", "B", "C"))
	require.NoError(t, repo.Create(ctx, tmpl))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, tmpl.ReorderItem(tmpl.Items[2].ID, 0, now))
	require.NoError(t, repo.Update(ctx, tmpl))

	got, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "C", got.Items[0].Task)
	assert.Equal(t, []int{0, 1, 2}, []int{got.Items[0].OrderIndex, got.Items[1].OrderIndex, got.Items[2].OrderIndex})
	assert.Equal(t, 2, got.Version)
}

func TestTemplateRepo_GetActiveByWorkType(t *testing.T) {
	database := testutil.NewTestDB(t)
	wtRepo := NewSQLiteWorkTypeRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	wt := seedWorkType(t, wtRepo, "user-1")

	none, err := repo.GetActiveByWorkType(ctx, wt.ID)
	require.NoError(t, err)
	assert.Nil(t, none, "no active template should yield nil, not an error")

	inactive := testutil.NewTestTemplate(wt.ID, "Old", testutil.WithTemplateInactive())
	require.NoError(t, repo.Create(ctx, inactive))
	active := testutil.NewTestTemplate(wt.ID, "Current", testutil.WithItems("Only"))
	require.NoError(t, repo.Create(ctx, active))

	got, err := repo.GetActiveByWorkType(ctx, wt.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, active.ID, got.ID)
	require.Len(t, got.Items, 1)
}

func TestTemplateRepo_DeleteCascadesItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	wtRepo := NewSQLiteWorkTypeRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	wt := seedWorkType(t, wtRepo, "user-1")
	tmpl := testutil.NewTestTemplate(wt.ID, "Opening", testutil.WithItems("A"))
	require.NoError(t, repo.Create(ctx, tmpl))
	require.NoError(t, repo.Delete(ctx, tmpl.ID))

	_, err := repo.GetByID(ctx, tmpl.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM checklist_items WHERE template_id = ?`, tmpl.ID).Scan(&n))
	assert.Zero(t, n)
}
