package service

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/google/uuid"
)

type checklistService struct {
	templates repository.TemplateRepo
	workTypes repository.WorkTypeRepo
	uow       db.UnitOfWork
	bus       *events.Bus
}

func NewChecklistService(templates repository.TemplateRepo, workTypes repository.WorkTypeRepo, uow db.UnitOfWork, bus *events.Bus) ChecklistService {
	return &checklistService{templates: templates, workTypes: workTypes, uow: uow, bus: bus}
}

func (s *checklistService) CreateTemplate(ctx context.Context, t *domain.ChecklistTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Version == 0 {
		t.Version = 1
	}
	for i := range t.Items {
		if t.Items[i].ID == "" {
			t.Items[i].ID = uuid.New().String()
		}
		t.Items[i].TemplateID = t.ID
		t.Items[i].CreatedAt = now
		t.Items[i].UpdatedAt = now
		if err := t.Items[i].Validate(); err != nil {
			return err
		}
	}
	if _, err := s.workTypes.GetByID(ctx, t.WorkTypeID); err != nil {
		return err
	}

	// Only one active template per work type. Creating a new active one
	// retires the current.
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		if t.Active {
			current, err := repo.GetActiveByWorkType(ctx, t.WorkTypeID)
			if err != nil {
				return err
			}
			if current != nil {
				current.Active = false
				current.UpdatedAt = now
				if err := repo.Update(ctx, current); err != nil {
					return err
				}
			}
		}
		return repo.Create(ctx, t)
	})
	if err != nil {
		return err
	}
	s.publish(events.EventInsert, t.ID)
	return nil
}

func (s *checklistService) GetTemplate(ctx context.Context, id string) (*domain.ChecklistTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *checklistService) GetActiveTemplate(ctx context.Context, workTypeID string) (*domain.ChecklistTemplate, error) {
	return s.templates.GetActiveByWorkType(ctx, workTypeID)
}

func (s *checklistService) ListTemplates(ctx context.Context, workTypeID string) ([]*domain.ChecklistTemplate, error) {
	return s.templates.ListByWorkType(ctx, workTypeID)
}

func (s *checklistService) UpdateTemplate(ctx context.Context, t *domain.ChecklistTemplate) error {
	t.UpdatedAt = time.Now().UTC()
	if err := s.templates.Update(ctx, t); err != nil {
		return err
	}
	s.publish(events.EventUpdate, t.ID)
	return nil
}

func (s *checklistService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(events.EventDelete, id)
	return nil
}

func (s *checklistService) AddItem(ctx context.Context, templateID string, item domain.ChecklistItem) (*domain.ChecklistTemplate, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	return s.mutate(ctx, templateID, func(t *domain.ChecklistTemplate, now time.Time) error {
		return t.AddItem(item, now)
	})
}

func (s *checklistService) ReorderItem(ctx context.Context, templateID, itemID string, newIndex int) (*domain.ChecklistTemplate, error) {
	return s.mutate(ctx, templateID, func(t *domain.ChecklistTemplate, now time.Time) error {
		return t.ReorderItem(itemID, newIndex, now)
	})
}

func (s *checklistService) RemoveItem(ctx context.Context, templateID, itemID string) (*domain.ChecklistTemplate, error) {
	return s.mutate(ctx, templateID, func(t *domain.ChecklistTemplate, now time.Time) error {
		return t.RemoveItem(itemID, now)
	})
}

// mutate applies a domain item operation and rewrites the template's item
// set with the bumped version in one transaction.
func (s *checklistService) mutate(ctx context.Context, templateID string, fn func(t *domain.ChecklistTemplate, now time.Time) error) (*domain.ChecklistTemplate, error) {
	var out *domain.ChecklistTemplate
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		t, err := repo.GetByID(ctx, templateID)
		if err != nil {
			return err
		}
		if err := fn(t, time.Now().UTC()); err != nil {
			return err
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(events.EventUpdate, templateID)
	return out, nil
}

func (s *checklistService) publish(event events.EventType, id string) {
	if s.bus != nil {
		s.bus.Publish(events.Change{Entity: events.EntityTemplate, Event: event, ID: id})
	}
}
