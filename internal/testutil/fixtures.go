package testutil

import (
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/google/uuid"
)

// Category options
type CategoryOption func(*domain.WorkCategory)

func WithCategoryInactive() CategoryOption {
	return func(c *domain.WorkCategory) {
		c.Active = false
	}
}

func WithCategorySortOrder(i int) CategoryOption {
	return func(c *domain.WorkCategory) {
		c.SortOrder = i
	}
}

func NewTestCategory(userID, name string, opts ...CategoryOption) *domain.WorkCategory {
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.WorkCategory{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     "#3B82F6",
		Icon:      "briefcase",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WorkType options
type WorkTypeOption func(*domain.WorkType)

func WithCategoryID(id string) WorkTypeOption {
	return func(w *domain.WorkType) {
		w.CategoryID = &id
	}
}

func WithHourlyRate(r int64) WorkTypeOption {
	return func(w *domain.WorkType) {
		w.HourlyRate = &r
	}
}

func WithDailyRate(r int64) WorkTypeOption {
	return func(w *domain.WorkType) {
		w.DailyRate = &r
	}
}

func WithWorkTypeInactive() WorkTypeOption {
	return func(w *domain.WorkType) {
		w.Active = false
	}
}

func NewTestWorkType(userID, name string, opts ...WorkTypeOption) *domain.WorkType {
	now := time.Now().UTC().Truncate(time.Second)
	w := &domain.WorkType{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     "#10B981",
		Icon:      "clock",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Template options
type TemplateOption func(*domain.ChecklistTemplate)

func WithTemplateInactive() TemplateOption {
	return func(t *domain.ChecklistTemplate) {
		t.Active = false
	}
}

// WithItems appends simple valid items with dense order indices.
func WithItems(tasks ...string) TemplateOption {
	return func(t *domain.ChecklistTemplate) {
		now := time.Now().UTC().Truncate(time.Second)
		for i, task := range tasks {
			t.Items = append(t.Items, domain.ChecklistItem{
				ID:           uuid.New().String(),
				TemplateID:   t.ID,
				Task:         task,
				Category:     domain.CategoryExecution,
				EstimatedMin: 10,
				OrderIndex:   i,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
	}
}

// WithMandatoryItem appends one mandatory item at the next order index.
func WithMandatoryItem(task string) TemplateOption {
	return func(t *domain.ChecklistTemplate) {
		now := time.Now().UTC().Truncate(time.Second)
		t.Items = append(t.Items, domain.ChecklistItem{
			ID:           uuid.New().String(),
			TemplateID:   t.ID,
			Task:         task,
			Mandatory:    true,
			Category:     domain.CategorySafety,
			EstimatedMin: 5,
			OrderIndex:   len(t.Items),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
}

func NewTestTemplate(workTypeID, name string, opts ...TemplateOption) *domain.ChecklistTemplate {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.ChecklistTemplate{
		ID:         uuid.New().String(),
		WorkTypeID: workTypeID,
		Name:       name,
		Version:    1,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewCompletedSession builds a completed session fixture of the given
// duration, started at start.
func NewCompletedSession(userID, workTypeID string, start time.Time, d time.Duration) *domain.WorkSession {
	s := domain.StartSession(userID, workTypeID, nil, start)
	s.ID = uuid.New().String()
	// Fixture sessions are always freshly started, so Complete cannot fail.
	_ = s.Complete("", false, start.Add(d))
	return s
}
