package service

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/google/uuid"
)

type workTypeService struct {
	workTypes  repository.WorkTypeRepo
	categories repository.CategoryRepo
	contacts   repository.ContactRepo
	bus        *events.Bus
}

func NewWorkTypeService(workTypes repository.WorkTypeRepo, categories repository.CategoryRepo, contacts repository.ContactRepo, bus *events.Bus) WorkTypeService {
	return &workTypeService{workTypes: workTypes, categories: categories, contacts: contacts, bus: bus}
}

func (s *workTypeService) Create(ctx context.Context, w *domain.WorkType) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	w.Active = true
	if err := w.Validate(); err != nil {
		return err
	}
	if w.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *w.CategoryID); err != nil {
			return err
		}
	}
	if err := s.workTypes.Create(ctx, w); err != nil {
		return err
	}
	s.publish(events.EventInsert, w.ID)
	return nil
}

func (s *workTypeService) GetByID(ctx context.Context, id string) (*domain.WorkType, error) {
	return s.workTypes.GetByID(ctx, id)
}

func (s *workTypeService) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkType, error) {
	return s.workTypes.ListByUser(ctx, userID, includeInactive)
}

func (s *workTypeService) Update(ctx context.Context, w *domain.WorkType) error {
	w.UpdatedAt = time.Now().UTC()
	if err := w.Validate(); err != nil {
		return err
	}
	if w.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *w.CategoryID); err != nil {
			return err
		}
	}
	if err := s.workTypes.Update(ctx, w); err != nil {
		return err
	}
	s.publish(events.EventUpdate, w.ID)
	return nil
}

func (s *workTypeService) Deactivate(ctx context.Context, id string) error {
	w, err := s.workTypes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Active = false
	w.UpdatedAt = time.Now().UTC()
	if err := s.workTypes.Update(ctx, w); err != nil {
		return err
	}
	s.publish(events.EventUpdate, id)
	return nil
}

func (s *workTypeService) Delete(ctx context.Context, id string) error {
	if err := s.workTypes.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(events.EventDelete, id)
	return nil
}

func (s *workTypeService) AddContact(ctx context.Context, c *domain.EmergencyContact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.workTypes.GetByID(ctx, c.WorkTypeID); err != nil {
		return err
	}
	return s.contacts.Create(ctx, c)
}

func (s *workTypeService) ListContacts(ctx context.Context, workTypeID string) ([]*domain.EmergencyContact, error) {
	return s.contacts.ListByWorkType(ctx, workTypeID)
}

func (s *workTypeService) RemoveContact(ctx context.Context, id string) error {
	return s.contacts.Delete(ctx, id)
}

func (s *workTypeService) publish(event events.EventType, id string) {
	if s.bus != nil {
		s.bus.Publish(events.Change{Entity: events.EntityWorkType, Event: event, ID: id})
	}
}
