package domain

import (
	"sort"
	"time"
)

// ChecklistItem is one ordered task in a template. OrderIndex values within
// a template are dense, zero-based and unique after every mutation.
type ChecklistItem struct {
	ID           string
	TemplateID   string
	TimeHint     string
	Task         string
	Mandatory    bool
	Category     ItemCategory
	EstimatedMin int
	OrderIndex   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the fields an item must carry before joining a template.
func (i *ChecklistItem) Validate() error {
	if i.Task == "" {
		return Validationf("checklist item task is required")
	}
	if i.EstimatedMin <= 0 {
		return Validationf("estimated duration must be positive, got %d", i.EstimatedMin)
	}
	if i.Category != "" && !ValidItemCategories[string(i.Category)] {
		return Validationf("unknown item category %q", i.Category)
	}
	return nil
}

// ChecklistTemplate is the ordered set of tasks attached to a work type.
// Version increments on every structural edit so sessions can record which
// revision they snapshot.
type ChecklistTemplate struct {
	ID         string
	WorkTypeID string
	Name       string
	Version    int
	Active     bool
	Items      []ChecklistItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SortedItems returns the items ordered by OrderIndex ascending.
func (t *ChecklistTemplate) SortedItems() []ChecklistItem {
	out := make([]ChecklistItem, len(t.Items))
	copy(out, t.Items)
	sort.Slice(out, func(a, b int) bool { return out[a].OrderIndex < out[b].OrderIndex })
	return out
}

// TotalEstimatedMin sums the estimated duration of all items.
func (t *ChecklistTemplate) TotalEstimatedMin() int {
	total := 0
	for _, it := range t.Items {
		total += it.EstimatedMin
	}
	return total
}

// AddItem validates the item and appends it with the next order index,
// bumping the template version.
func (t *ChecklistTemplate) AddItem(item ChecklistItem, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.TemplateID = t.ID
	item.OrderIndex = len(t.Items)
	item.CreatedAt = now
	item.UpdatedAt = now
	t.Items = append(t.Items, item)
	t.bump(now)
	return nil
}

// ReorderItem moves the item to newIndex and recompacts order indices so
// they stay dense and unique. No mutation occurs on failure.
func (t *ChecklistTemplate) ReorderItem(itemID string, newIndex int, now time.Time) error {
	if newIndex < 0 || newIndex >= len(t.Items) {
		return Validationf("reorder index %d out of range [0,%d]", newIndex, len(t.Items)-1)
	}
	sorted := t.SortedItems()
	from := -1
	for i, it := range sorted {
		if it.ID == itemID {
			from = i
			break
		}
	}
	if from == -1 {
		return Referentialf("checklist item %s not in template %s", itemID, t.ID)
	}

	moved := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:newIndex], append([]ChecklistItem{moved}, sorted[newIndex:]...)...)

	t.reindex(sorted, now)
	t.bump(now)
	return nil
}

// RemoveItem removes the item and recompacts the remaining order indices.
func (t *ChecklistTemplate) RemoveItem(itemID string, now time.Time) error {
	sorted := t.SortedItems()
	at := -1
	for i, it := range sorted {
		if it.ID == itemID {
			at = i
			break
		}
	}
	if at == -1 {
		return Referentialf("checklist item %s not in template %s", itemID, t.ID)
	}
	sorted = append(sorted[:at], sorted[at+1:]...)
	t.reindex(sorted, now)
	t.bump(now)
	return nil
}

func (t *ChecklistTemplate) reindex(sorted []ChecklistItem, now time.Time) {
	for i := range sorted {
		if sorted[i].OrderIndex != i {
			sorted[i].OrderIndex = i
			sorted[i].UpdatedAt = now
		}
	}
	t.Items = sorted
}

func (t *ChecklistTemplate) bump(now time.Time) {
	t.Version++
	t.UpdatedAt = now
}
