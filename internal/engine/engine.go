// Package engine drives the work-session lifecycle. All writes for a given
// user are serialized through a per-user mutex so the one-open-session rule
// and the snapshot-at-start invariant hold under concurrent callers; reads
// take no lock. Transitions are computed in memory on domain values and
// persisted atomically through the unit of work.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
	"github.com/alexanderramin/turno/internal/payroll"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/google/uuid"
)

type Engine struct {
	sessions  repository.SessionRepo
	templates repository.TemplateRepo
	workTypes repository.WorkTypeRepo
	uow       db.UnitOfWork
	cfg       Config

	// now is swappable for tests.
	now func() time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

func New(sessions repository.SessionRepo, templates repository.TemplateRepo, workTypes repository.WorkTypeRepo, uow db.UnitOfWork, cfg Config) *Engine {
	return &Engine{
		sessions:  sessions,
		templates: templates,
		workTypes: workTypes,
		uow:       uow,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		users:     make(map[string]*sync.Mutex),
	}
}

// Start opens a new active session for the user against the work type,
// snapshotting its active checklist template. Fails with ErrConflict while
// the user already has an open session.
func (e *Engine) Start(ctx context.Context, userID, workTypeID string) (*domain.WorkSession, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	open, err := e.sessions.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fmt.Errorf("%w: session %s is %s", domain.ErrConflict, open.ID, open.Status)
	}

	wt, err := e.workTypes.GetByID(ctx, workTypeID)
	if err != nil {
		return nil, err
	}
	if !wt.Active {
		return nil, domain.Validationf("work type %s is inactive", wt.Name)
	}

	tmpl, err := e.templates.GetActiveByWorkType(ctx, workTypeID)
	if err != nil {
		return nil, err
	}

	s := domain.StartSession(userID, workTypeID, tmpl, e.now())
	s.ID = uuid.New().String()

	err = e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Pause suspends the user's active session.
func (e *Engine) Pause(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.Pause(now)
	})
}

// Resume reactivates the user's paused session.
func (e *Engine) Resume(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.Resume(now)
	})
}

// Complete ends the user's open session. Honors the RequireMandatory policy.
func (e *Engine) Complete(ctx context.Context, userID, notes string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.Complete(notes, e.cfg.RequireMandatory, now)
	})
}

// Cancel ends the user's open session without pay.
func (e *Engine) Cancel(ctx context.Context, userID, reason string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.Cancel(reason, now)
	})
}

// SetItemStatus records checklist progress on the user's open session.
func (e *Engine) SetItemStatus(ctx context.Context, userID, itemID string, status domain.ItemStatus, notes string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.SetItemStatus(itemID, status, notes, now)
	})
}

// ReportIssue records an issue on the user's open session.
func (e *Engine) ReportIssue(ctx context.Context, userID string, issue domain.WorkIssue) (*domain.WorkSession, error) {
	if issue.ID == "" {
		issue.ID = uuid.New().String()
	}
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.AddIssue(issue, now)
	})
}

// ResolveIssue marks an issue on the user's open session resolved.
func (e *Engine) ResolveIssue(ctx context.Context, userID, issueID string) (*domain.WorkSession, error) {
	return e.transition(ctx, userID, func(s *domain.WorkSession, now time.Time) error {
		return s.ResolveIssue(issueID, now)
	})
}

// Active returns the user's open session, or (nil, nil) when there is none.
// Lock-free read.
func (e *Engine) Active(ctx context.Context, userID string) (*domain.WorkSession, error) {
	return e.sessions.GetActive(ctx, userID)
}

// EarningsPreview computes what the user's open session would earn if it
// were completed now. Lock-free read; the stored session is not modified.
func (e *Engine) EarningsPreview(ctx context.Context, userID string) (payroll.Earnings, *domain.WorkSession, error) {
	s, err := e.sessions.GetActive(ctx, userID)
	if err != nil {
		return payroll.Earnings{}, nil, err
	}
	if s == nil {
		return payroll.Earnings{}, nil, fmt.Errorf("no open session for user %s: %w", userID, domain.ErrNotFound)
	}
	wt, err := e.workTypes.GetByID(ctx, s.WorkTypeID)
	if err != nil {
		return payroll.Earnings{}, nil, err
	}

	preview := *s
	if err := preview.Complete("", false, e.now()); err != nil {
		return payroll.Earnings{}, nil, err
	}
	earnings, err := payroll.Calculate(&preview, wt, e.cfg.Pay)
	if err != nil {
		return payroll.Earnings{}, nil, err
	}
	return earnings, s, nil
}

// Recent lists the user's sessions from the last n days, newest first.
func (e *Engine) Recent(ctx context.Context, userID string, days int) ([]*domain.WorkSession, error) {
	return e.sessions.ListRecent(ctx, userID, days)
}

// Earnings computes pay for an already completed session.
func (e *Engine) Earnings(ctx context.Context, s *domain.WorkSession) (payroll.Earnings, error) {
	wt, err := e.workTypes.GetByID(ctx, s.WorkTypeID)
	if err != nil {
		return payroll.Earnings{}, err
	}
	return payroll.Calculate(s, wt, e.cfg.Pay)
}

// transition loads the user's open session, applies fn, and persists the
// result atomically. The engine's per-user lock serializes the whole
// read-modify-write.
func (e *Engine) transition(ctx context.Context, userID string, fn func(s *domain.WorkSession, now time.Time) error) (*domain.WorkSession, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s, err := e.sessions.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("no open session for user %s: %w", userID, domain.ErrNotFound)
	}

	if err := fn(s, e.now()); err != nil {
		return nil, err
	}

	err = e.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (e *Engine) userLock(userID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.users[userID]
	if !ok {
		m = &sync.Mutex{}
		e.users[userID] = m
	}
	return m
}
