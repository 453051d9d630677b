package domain

import "time"

// ChecklistProgressEntry tracks one snapshot item's completion within a
// session. ItemID always references an item in the session's snapshot.
type ChecklistProgressEntry struct {
	ItemID      string
	Status      ItemStatus
	CompletedAt *time.Time
	Notes       string
	UpdatedAt   time.Time
}

// WorkIssue is a problem recorded during a session.
type WorkIssue struct {
	ID          string
	SessionID   string
	OccurredAt  time.Time
	Type        IssueType
	Severity    IssueSeverity
	Description string
	Resolved    bool
	ResolvedAt  *time.Time
}

// WorkSession is one timed run of a work type. It is created by StartSession,
// mutated only through its transition methods, and immutable once it reaches
// a terminal status. The checklist snapshot is fixed at start time and never
// resynced to later template edits.
type WorkSession struct {
	ID           string
	UserID       string
	WorkTypeID   string
	StartedAt    time.Time
	EndedAt      *time.Time
	Status       SessionStatus
	Notes        string
	CancelReason string

	// Snapshot provenance.
	TemplateID      string
	TemplateVersion int

	Snapshot []ChecklistItem
	Progress []ChecklistProgressEntry
	Issues   []WorkIssue

	// Pause accounting. PausedAt is set while paused; PausedSec accumulates
	// closed pause intervals so unpaid-pause policies stay computable.
	PausedAt  *time.Time
	PausedSec int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StartSession creates an active session for the user and work type,
// snapshotting the given template's items (nil template means an empty
// checklist). Every snapshot item starts with a pending progress entry.
func StartSession(userID, workTypeID string, tmpl *ChecklistTemplate, now time.Time) *WorkSession {
	s := &WorkSession{
		UserID:     userID,
		WorkTypeID: workTypeID,
		StartedAt:  now,
		Status:     SessionActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if tmpl != nil {
		s.TemplateID = tmpl.ID
		s.TemplateVersion = tmpl.Version
		s.Snapshot = tmpl.SortedItems()
		s.Progress = make([]ChecklistProgressEntry, len(s.Snapshot))
		for i, item := range s.Snapshot {
			s.Progress[i] = ChecklistProgressEntry{
				ItemID:    item.ID,
				Status:    ItemPending,
				UpdatedAt: now,
			}
		}
	}
	return s
}

// Pause suspends an active session.
func (s *WorkSession) Pause(now time.Time) error {
	if s.Status != SessionActive {
		return InvalidStatef("cannot pause a %s session", s.Status)
	}
	paused := now
	s.PausedAt = &paused
	s.Status = SessionPaused
	s.UpdatedAt = now
	return nil
}

// Resume reactivates a paused session and accumulates the pause interval.
func (s *WorkSession) Resume(now time.Time) error {
	if s.Status != SessionPaused {
		return InvalidStatef("cannot resume a %s session", s.Status)
	}
	s.closePause(now)
	s.Status = SessionActive
	s.UpdatedAt = now
	return nil
}

// Complete ends an active or paused session. When requireMandatory is set,
// completion is rejected while mandatory items are neither completed nor
// skipped; the session is left untouched on rejection.
func (s *WorkSession) Complete(notes string, requireMandatory bool, now time.Time) error {
	if !s.Status.IsOpen() {
		return InvalidStatef("cannot complete a %s session", s.Status)
	}
	if requireMandatory {
		if n := s.MandatoryOutstanding(); n > 0 {
			return ErrMandatoryOutstanding
		}
	}
	s.closePause(now)
	end := now
	s.EndedAt = &end
	s.Status = SessionCompleted
	if notes != "" {
		s.Notes = notes
	}
	s.UpdatedAt = now
	return nil
}

// Cancel ends an active or paused session without pay.
func (s *WorkSession) Cancel(reason string, now time.Time) error {
	if !s.Status.IsOpen() {
		return InvalidStatef("cannot cancel a %s session", s.Status)
	}
	s.closePause(now)
	end := now
	s.EndedAt = &end
	s.Status = SessionCancelled
	s.CancelReason = reason
	s.UpdatedAt = now
	return nil
}

func (s *WorkSession) closePause(now time.Time) {
	if s.PausedAt == nil {
		return
	}
	if d := now.Sub(*s.PausedAt); d > 0 {
		s.PausedSec += int64(d / time.Second)
	}
	s.PausedAt = nil
}

// SetItemStatus records progress for a snapshot item. Transitions among
// pending/completed/skipped are unrestricted; re-setting the same status is
// a no-op that still refreshes notes and the entry timestamp. Entering
// completed stamps CompletedAt once, leaving completed clears it.
func (s *WorkSession) SetItemStatus(itemID string, status ItemStatus, notes string, now time.Time) error {
	if !s.Status.IsOpen() {
		return InvalidStatef("cannot update checklist on a %s session", s.Status)
	}
	if !ValidItemStatuses[string(status)] {
		return Validationf("unknown item status %q", status)
	}
	if !s.inSnapshot(itemID) {
		return Referentialf("item %s is not in the session snapshot", itemID)
	}

	entry := s.progressEntry(itemID)
	switch {
	case status == ItemCompleted && entry.Status != ItemCompleted:
		completed := now
		entry.CompletedAt = &completed
	case status != ItemCompleted:
		entry.CompletedAt = nil
	}
	entry.Status = status
	entry.Notes = notes
	entry.UpdatedAt = now
	s.UpdatedAt = now
	return nil
}

// AddIssue records an issue against an open session.
func (s *WorkSession) AddIssue(issue WorkIssue, now time.Time) error {
	if !s.Status.IsOpen() {
		return InvalidStatef("cannot report an issue on a %s session", s.Status)
	}
	if issue.Description == "" {
		return Validationf("issue description is required")
	}
	issue.SessionID = s.ID
	if issue.OccurredAt.IsZero() {
		issue.OccurredAt = now
	}
	s.Issues = append(s.Issues, issue)
	s.UpdatedAt = now
	return nil
}

// ResolveIssue marks an issue resolved while the session is still open.
func (s *WorkSession) ResolveIssue(issueID string, now time.Time) error {
	if !s.Status.IsOpen() {
		return InvalidStatef("cannot resolve an issue on a %s session", s.Status)
	}
	for i := range s.Issues {
		if s.Issues[i].ID == issueID {
			s.Issues[i].Resolved = true
			resolved := now
			s.Issues[i].ResolvedAt = &resolved
			s.UpdatedAt = now
			return nil
		}
	}
	return Referentialf("issue %s is not part of session %s", issueID, s.ID)
}

// CompletionRate returns completed items over snapshot size, 0 for an empty
// snapshot.
func (s *WorkSession) CompletionRate() float64 {
	if len(s.Snapshot) == 0 {
		return 0
	}
	done := 0
	for _, e := range s.Progress {
		if e.Status == ItemCompleted {
			done++
		}
	}
	return float64(done) / float64(len(s.Snapshot))
}

// MandatoryOutstanding counts mandatory snapshot items that are neither
// completed nor skipped.
func (s *WorkSession) MandatoryOutstanding() int {
	byID := make(map[string]ItemStatus, len(s.Progress))
	for _, e := range s.Progress {
		byID[e.ItemID] = e.Status
	}
	n := 0
	for _, item := range s.Snapshot {
		if !item.Mandatory {
			continue
		}
		if st, ok := byID[item.ID]; !ok || (st != ItemCompleted && st != ItemSkipped) {
			n++
		}
	}
	return n
}

// ElapsedAt returns wall-clock time since start, clamped to the session end
// for terminal sessions.
func (s *WorkSession) ElapsedAt(now time.Time) time.Duration {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// PausedDuration returns total time spent paused, including an open pause.
func (s *WorkSession) PausedDuration(now time.Time) time.Duration {
	d := time.Duration(s.PausedSec) * time.Second
	if s.PausedAt != nil && now.After(*s.PausedAt) {
		d += now.Sub(*s.PausedAt)
	}
	return d
}

func (s *WorkSession) inSnapshot(itemID string) bool {
	for _, item := range s.Snapshot {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

func (s *WorkSession) progressEntry(itemID string) *ChecklistProgressEntry {
	for i := range s.Progress {
		if s.Progress[i].ItemID == itemID {
			return &s.Progress[i]
		}
	}
	s.Progress = append(s.Progress, ChecklistProgressEntry{ItemID: itemID, Status: ItemPending})
	return &s.Progress[len(s.Progress)-1]
}
