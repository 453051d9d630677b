package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

type salaryService struct {
	salaries  repository.SalaryRepo
	sessions  repository.SessionRepo
	workTypes repository.WorkTypeRepo
	settings  repository.SettingsRepo
	policy    payroll.Policy
	overtime  OvertimeResolver
	bus       *events.Bus

	scheduler gocron.Scheduler
}

func NewSalaryService(
	salaries repository.SalaryRepo,
	sessions repository.SessionRepo,
	workTypes repository.WorkTypeRepo,
	settings repository.SettingsRepo,
	policy payroll.Policy,
	overtime OvertimeResolver,
	bus *events.Bus,
) SalaryService {
	return &salaryService{
		salaries:  salaries,
		sessions:  sessions,
		workTypes: workTypes,
		settings:  settings,
		policy:    policy,
		overtime:  overtime,
		bus:       bus,
	}
}

// Rebuild recomputes the period aggregate from session records and upserts
// the cache row. The aggregate is never patched in place.
func (s *salaryService) Rebuild(ctx context.Context, userID string, pt domain.PeriodType, anchor time.Time) (*domain.Salary, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := settings.Location()
	period := payroll.PeriodFor(pt, anchor, loc)

	sessions, err := s.sessions.ListCompletedInRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	types, err := s.workTypes.ListByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.WorkType, len(types))
	for _, wt := range types {
		byID[wt.ID] = wt
	}

	var overtime payroll.OvertimePolicy
	if s.overtime != nil {
		overtime = s.overtime(pt)
	}

	salary, err := payroll.Aggregate(userID, period, sessions, byID, loc, s.policy, overtime)
	if err != nil {
		return nil, err
	}
	salary.ID = uuid.New().String()
	now := time.Now().UTC()
	salary.CreatedAt = now
	salary.UpdatedAt = now

	if err := s.salaries.Upsert(ctx, salary); err != nil {
		return nil, err
	}
	if s.bus != nil {
		s.bus.Publish(events.Change{Entity: events.EntitySalary, Event: events.EventUpdate, ID: salary.ID})
	}
	return salary, nil
}

func (s *salaryService) Get(ctx context.Context, userID string, pt domain.PeriodType, anchor time.Time) (*domain.Salary, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	period := payroll.PeriodFor(pt, anchor, settings.Location())
	return s.salaries.Get(ctx, userID, pt, period.Start)
}

func (s *salaryService) ListByUser(ctx context.Context, userID string, pt domain.PeriodType) ([]*domain.Salary, error) {
	return s.salaries.ListByUser(ctx, userID, pt)
}

// StartAutoRefresh rebuilds the current daily, weekly, and monthly aggregates
// on an interval until ctx is cancelled.
func (s *salaryService) StartAutoRefresh(ctx context.Context, userID string, every time.Duration) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create salary scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(s.refreshAll, ctx, userID),
		gocron.WithName("salary-refresh"),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule salary refresh: %w", err)
	}
	s.scheduler = scheduler
	scheduler.Start()
	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("salary scheduler shutdown", "error", err)
		}
	}()
	return nil
}

func (s *salaryService) refreshAll(ctx context.Context, userID string) {
	now := time.Now().UTC()
	for _, pt := range []domain.PeriodType{domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly} {
		if _, err := s.Rebuild(ctx, userID, pt, now); err != nil {
			slog.Warn("salary refresh failed", "period", string(pt), "error", err)
		}
	}
}
