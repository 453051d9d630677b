package service

import (
	"context"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/google/uuid"
)

type categoryService struct {
	categories repository.CategoryRepo
	workTypes  repository.WorkTypeRepo
	bus        *events.Bus
}

func NewCategoryService(categories repository.CategoryRepo, workTypes repository.WorkTypeRepo, bus *events.Bus) CategoryService {
	return &categoryService{categories: categories, workTypes: workTypes, bus: bus}
}

func (s *categoryService) Create(ctx context.Context, c *domain.WorkCategory) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Active = true
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return err
	}
	s.publish(events.EventInsert, c.ID)
	return nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*domain.WorkCategory, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *categoryService) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkCategory, error) {
	return s.categories.ListByUser(ctx, userID, includeInactive)
}

func (s *categoryService) Update(ctx context.Context, c *domain.WorkCategory) error {
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return err
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return err
	}
	s.publish(events.EventUpdate, c.ID)
	return nil
}

func (s *categoryService) Deactivate(ctx context.Context, id string) error {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Active = false
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, c); err != nil {
		return err
	}
	s.publish(events.EventUpdate, id)
	return nil
}

// Delete hard-deletes a category. It is blocked while any work type still
// references the category, archived or not; deactivate instead.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	n, err := s.workTypes.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Referentialf("category has %d work types", n)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(events.EventDelete, id)
	return nil
}

func (s *categoryService) publish(event events.EventType, id string) {
	if s.bus != nil {
		s.bus.Publish(events.Change{Entity: events.EntityCategory, Event: event, ID: id})
	}
}
