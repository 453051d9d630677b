package service

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/payroll"
)

type CategoryService interface {
	Create(ctx context.Context, c *domain.WorkCategory) error
	GetByID(ctx context.Context, id string) (*domain.WorkCategory, error)
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkCategory, error)
	Update(ctx context.Context, c *domain.WorkCategory) error
	Deactivate(ctx context.Context, id string) error
	// Delete fails with ErrReferential while work types reference the
	// category.
	Delete(ctx context.Context, id string) error
}

type WorkTypeService interface {
	Create(ctx context.Context, w *domain.WorkType) error
	GetByID(ctx context.Context, id string) (*domain.WorkType, error)
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkType, error)
	Update(ctx context.Context, w *domain.WorkType) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error

	AddContact(ctx context.Context, c *domain.EmergencyContact) error
	ListContacts(ctx context.Context, workTypeID string) ([]*domain.EmergencyContact, error)
	RemoveContact(ctx context.Context, id string) error
}

type ChecklistService interface {
	CreateTemplate(ctx context.Context, t *domain.ChecklistTemplate) error
	GetTemplate(ctx context.Context, id string) (*domain.ChecklistTemplate, error)
	GetActiveTemplate(ctx context.Context, workTypeID string) (*domain.ChecklistTemplate, error)
	ListTemplates(ctx context.Context, workTypeID string) ([]*domain.ChecklistTemplate, error)
	UpdateTemplate(ctx context.Context, t *domain.ChecklistTemplate) error
	DeleteTemplate(ctx context.Context, id string) error

	AddItem(ctx context.Context, templateID string, item domain.ChecklistItem) (*domain.ChecklistTemplate, error)
	ReorderItem(ctx context.Context, templateID, itemID string, newIndex int) (*domain.ChecklistTemplate, error)
	RemoveItem(ctx context.Context, templateID, itemID string) (*domain.ChecklistTemplate, error)
}

type SalaryService interface {
	// Rebuild recomputes the aggregate for the period containing anchor and
	// upserts the cache row.
	Rebuild(ctx context.Context, userID string, pt domain.PeriodType, anchor time.Time) (*domain.Salary, error)
	Get(ctx context.Context, userID string, pt domain.PeriodType, anchor time.Time) (*domain.Salary, error)
	ListByUser(ctx context.Context, userID string, pt domain.PeriodType) ([]*domain.Salary, error)
	// StartAutoRefresh schedules periodic rebuilds of the current daily,
	// weekly, and monthly periods until the context is cancelled.
	StartAutoRefresh(ctx context.Context, userID string, every time.Duration) error
}

type SettingsService interface {
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Update(ctx context.Context, s *domain.UserSettings) error
}

// OvertimeResolver lets callers plug an overtime rule into salary rebuilds.
type OvertimeResolver func(pt domain.PeriodType) payroll.OvertimePolicy
