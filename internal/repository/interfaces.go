package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
)

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.WorkCategory) error
	GetByID(ctx context.Context, id string) (*domain.WorkCategory, error)
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkCategory, error)
	Update(ctx context.Context, c *domain.WorkCategory) error
	Delete(ctx context.Context, id string) error
}

type WorkTypeRepo interface {
	Create(ctx context.Context, w *domain.WorkType) error
	GetByID(ctx context.Context, id string) (*domain.WorkType, error)
	ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkType, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	Update(ctx context.Context, w *domain.WorkType) error
	Delete(ctx context.Context, id string) error
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ChecklistTemplate) error
	GetByID(ctx context.Context, id string) (*domain.ChecklistTemplate, error)
	// GetActiveByWorkType returns (nil, nil) when the work type has no
	// active template.
	GetActiveByWorkType(ctx context.Context, workTypeID string) (*domain.ChecklistTemplate, error)
	ListByWorkType(ctx context.Context, workTypeID string) ([]*domain.ChecklistTemplate, error)
	// Update rewrites the template header and its full item set.
	Update(ctx context.Context, t *domain.ChecklistTemplate) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	// GetActive returns the user's open (active or paused) session, or
	// (nil, nil) when there is none.
	GetActive(ctx context.Context, userID string) (*domain.WorkSession, error)
	Update(ctx context.Context, s *domain.WorkSession) error
	ListCompletedInRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]*domain.WorkSession, error)
	ListRecent(ctx context.Context, userID string, days int) ([]*domain.WorkSession, error)
	Delete(ctx context.Context, id string) error
}

type SalaryRepo interface {
	Upsert(ctx context.Context, s *domain.Salary) error
	Get(ctx context.Context, userID string, pt domain.PeriodType, periodStart time.Time) (*domain.Salary, error)
	ListByUser(ctx context.Context, userID string, pt domain.PeriodType) ([]*domain.Salary, error)
}

type ContactRepo interface {
	Create(ctx context.Context, c *domain.EmergencyContact) error
	ListByWorkType(ctx context.Context, workTypeID string) ([]*domain.EmergencyContact, error)
	Update(ctx context.Context, c *domain.EmergencyContact) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepo interface {
	// Get returns zero-value settings for an unknown user.
	Get(ctx context.Context, userID string) (*domain.UserSettings, error)
	Upsert(ctx context.Context, s *domain.UserSettings) error
}
