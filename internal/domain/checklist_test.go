package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplate(taskCount int) *ChecklistTemplate {
	t := &ChecklistTemplate{ID: "tpl-1", WorkTypeID: "wt-1", Name: "Opening", Version: 1, Active: true}
	for i := 0; i < taskCount; i++ {
		t.Items = append(t.Items, ChecklistItem{
			ID:           string(rune('a' + i)),
			TemplateID:   t.ID,
			Task:         "task",
			EstimatedMin: 10,
			OrderIndex:   i,
		})
	}
	return t
}

func orderOf(t *ChecklistTemplate) []string {
	var ids []string
	for _, it := range t.SortedItems() {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestAddItem_AppendsWithNextIndex(t *testing.T) {
	tpl := testTemplate(2)
	require.NoError(t, tpl.AddItem(ChecklistItem{ID: "x", Task: "Lock up", EstimatedMin: 5}, testNow))

	assert.Equal(t, []string{"a", "b", "x"}, orderOf(tpl))
	assert.Equal(t, 2, tpl.Items[2].OrderIndex)
	assert.Equal(t, 2, tpl.Version, "structural edit should bump version")
}

func TestAddItem_RejectsEmptyTask(t *testing.T) {
	tpl := testTemplate(1)
	err := tpl.AddItem(ChecklistItem{ID: "x", EstimatedMin: 5}, testNow)
	require.ErrorIs(t, err, ErrValidation)
	assert.Len(t, tpl.Items, 1, "failed add should not mutate the template")
	assert.Equal(t, 1, tpl.Version)
}

func TestAddItem_RejectsNonPositiveDuration(t *testing.T) {
	tpl := testTemplate(0)
	err := tpl.AddItem(ChecklistItem{ID: "x", Task: "Sweep", EstimatedMin: 0}, testNow)
	require.ErrorIs(t, err, ErrValidation)
}

func TestReorderItem_MovesAndRecompacts(t *testing.T) {
	tpl := testTemplate(4)
	require.NoError(t, tpl.ReorderItem("d", 0, testNow))

	assert.Equal(t, []string{"d", "a", "b", "c"}, orderOf(tpl))
	for i, it := range tpl.SortedItems() {
		assert.Equal(t, i, it.OrderIndex, "indices must stay dense")
	}
	assert.Equal(t, 2, tpl.Version)
}

func TestReorderItem_RoundTripRestoresOrder(t *testing.T) {
	tpl := testTemplate(4)
	original := orderOf(tpl)

	require.NoError(t, tpl.ReorderItem("c", 0, testNow))
	require.NoError(t, tpl.ReorderItem("c", 2, testNow))

	assert.Equal(t, original, orderOf(tpl))
}

func TestReorderItem_IndexOutOfRange(t *testing.T) {
	tpl := testTemplate(3)
	require.ErrorIs(t, tpl.ReorderItem("a", 3, testNow), ErrValidation)
	require.ErrorIs(t, tpl.ReorderItem("a", -1, testNow), ErrValidation)
	assert.Equal(t, []string{"a", "b", "c"}, orderOf(tpl))
	assert.Equal(t, 1, tpl.Version, "failed reorder should not bump version")
}

func TestReorderItem_UnknownItem(t *testing.T) {
	tpl := testTemplate(2)
	require.ErrorIs(t, tpl.ReorderItem("nope", 0, testNow), ErrReferential)
}

func TestRemoveItem_Recompacts(t *testing.T) {
	tpl := testTemplate(3)
	require.NoError(t, tpl.RemoveItem("b", testNow))

	assert.Equal(t, []string{"a", "c"}, orderOf(tpl))
	assert.Equal(t, 0, tpl.SortedItems()[0].OrderIndex)
	assert.Equal(t, 1, tpl.SortedItems()[1].OrderIndex)
	assert.Equal(t, 2, tpl.Version)
}

func TestRemoveItem_Unknown(t *testing.T) {
	tpl := testTemplate(2)
	require.ErrorIs(t, tpl.RemoveItem("zz", testNow), ErrReferential)
	assert.Len(t, tpl.Items, 2)
}

func TestTotalEstimatedMin(t *testing.T) {
	tpl := testTemplate(3)
	assert.Equal(t, 30, tpl.TotalEstimatedMin())
}
