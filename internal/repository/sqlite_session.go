package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo on a SQLite database. A session
// row carries the lifecycle fields; snapshot items with their progress live
// in session_items and issues in session_issues.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

const sessionCols = `id, user_id, work_type_id, template_id, template_version, started_at, ended_at,
	status, notes, cancel_reason, paused_at, paused_sec, created_at, updated_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + sessionCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, s.WorkTypeID, s.TemplateID, s.TemplateVersion,
		fmtTime(s.StartedAt), nullableTimeToString(s.EndedAt),
		string(s.Status), s.Notes, s.CancelReason,
		nullableTimeToString(s.PausedAt), s.PausedSec,
		fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	if err := r.writeItems(ctx, s); err != nil {
		return err
	}
	return r.writeIssues(ctx, s)
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionCols+` FROM work_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSessionRepo) GetActive(ctx context.Context, userID string) (*domain.WorkSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM work_sessions
		 WHERE user_id = ? AND status IN ('active','paused')
		 LIMIT 1`, userID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Update rewrites the session row and replaces its progress and issue rows.
// Snapshot columns are rewritten byte-identical since the snapshot never
// changes after creation.
func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.WorkSession) error {
	query := `UPDATE work_sessions
		SET ended_at = ?, status = ?, notes = ?, cancel_reason = ?, paused_at = ?, paused_sec = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(s.EndedAt), string(s.Status), s.Notes, s.CancelReason,
		nullableTimeToString(s.PausedAt), s.PausedSec, fmtTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating work session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work session %s: %w", s.ID, domain.ErrNotFound)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_items WHERE session_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing session items: %w", err)
	}
	if err := r.writeItems(ctx, s); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_issues WHERE session_id = ?`, s.ID); err != nil {
		return fmt.Errorf("clearing session issues: %w", err)
	}
	return r.writeIssues(ctx, s)
}

func (r *SQLiteSessionRepo) ListCompletedInRange(ctx context.Context, userID string, start, endExclusive time.Time) ([]*domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionCols+` FROM work_sessions
		 WHERE user_id = ? AND status = 'completed' AND started_at >= ? AND started_at < ?
		 ORDER BY started_at`, userID, fmtTime(start), fmtTime(endExclusive))
	if err != nil {
		return nil, fmt.Errorf("listing completed sessions: %w", err)
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *SQLiteSessionRepo) ListRecent(ctx context.Context, userID string, days int) ([]*domain.WorkSession, error) {
	// Cutoff is computed here so the comparison stays within the stored
	// RFC3339 format; datetime() output would not collate against it.
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionCols+` FROM work_sessions
		 WHERE user_id = ? AND started_at >= ?
		 ORDER BY started_at DESC`, userID, fmtTime(cutoff))
	if err != nil {
		return nil, fmt.Errorf("listing recent sessions: %w", err)
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) collect(ctx context.Context, rows *sql.Rows) ([]*domain.WorkSession, error) {
	var out []*domain.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range out {
		if err := r.loadChildren(ctx, s); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteSessionRepo) writeItems(ctx context.Context, s *domain.WorkSession) error {
	progress := make(map[string]domain.ChecklistProgressEntry, len(s.Progress))
	for _, e := range s.Progress {
		progress[e.ItemID] = e
	}
	query := `INSERT INTO session_items
		(session_id, item_id, time_hint, task, mandatory, category, estimated_min, order_index,
		 status, completed_at, notes, entry_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, it := range s.Snapshot {
		e := progress[it.ID]
		status := e.Status
		if status == "" {
			status = domain.ItemPending
		}
		var entryUpdated string
		if !e.UpdatedAt.IsZero() {
			entryUpdated = fmtTime(e.UpdatedAt)
		}
		_, err := r.db.ExecContext(ctx, query,
			s.ID, it.ID, it.TimeHint, it.Task, boolToInt(it.Mandatory), string(it.Category),
			it.EstimatedMin, it.OrderIndex,
			string(status), nullableTimeToString(e.CompletedAt), e.Notes, entryUpdated)
		if err != nil {
			return fmt.Errorf("inserting session item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) writeIssues(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO session_issues
		(id, session_id, occurred_at, type, severity, description, resolved, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, iss := range s.Issues {
		_, err := r.db.ExecContext(ctx, query,
			iss.ID, s.ID, fmtTime(iss.OccurredAt), string(iss.Type), string(iss.Severity),
			iss.Description, boolToInt(iss.Resolved), nullableTimeToString(iss.ResolvedAt))
		if err != nil {
			return fmt.Errorf("inserting session issue %s: %w", iss.ID, err)
		}
	}
	return nil
}

func (r *SQLiteSessionRepo) loadChildren(ctx context.Context, s *domain.WorkSession) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_id, time_hint, task, mandatory, category, estimated_min, order_index,
		        status, completed_at, notes, entry_updated
		 FROM session_items WHERE session_id = ? ORDER BY order_index`, s.ID)
	if err != nil {
		return fmt.Errorf("loading session items: %w", err)
	}
	defer rows.Close()

	s.Snapshot = nil
	s.Progress = nil
	for rows.Next() {
		var it domain.ChecklistItem
		var e domain.ChecklistProgressEntry
		var mandatory int
		var category, status, entryUpdated string
		var completedAt sql.NullString
		if err := rows.Scan(&it.ID, &it.TimeHint, &it.Task, &mandatory, &category,
			&it.EstimatedMin, &it.OrderIndex, &status, &completedAt, &e.Notes, &entryUpdated); err != nil {
			return fmt.Errorf("scanning session item: %w", err)
		}
		it.TemplateID = s.TemplateID
		it.Mandatory = intToBool(mandatory)
		it.Category = domain.ItemCategory(category)
		e.ItemID = it.ID
		e.Status = domain.ItemStatus(status)
		e.CompletedAt = parseNullableTime(completedAt)
		if entryUpdated != "" {
			e.UpdatedAt = parseTime(entryUpdated)
		}
		s.Snapshot = append(s.Snapshot, it)
		s.Progress = append(s.Progress, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	issueRows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, occurred_at, type, severity, description, resolved, resolved_at
		 FROM session_issues WHERE session_id = ? ORDER BY occurred_at`, s.ID)
	if err != nil {
		return fmt.Errorf("loading session issues: %w", err)
	}
	defer issueRows.Close()

	s.Issues = nil
	for issueRows.Next() {
		var iss domain.WorkIssue
		var occurred, issType, severity string
		var resolved int
		var resolvedAt sql.NullString
		if err := issueRows.Scan(&iss.ID, &iss.SessionID, &occurred, &issType, &severity,
			&iss.Description, &resolved, &resolvedAt); err != nil {
			return fmt.Errorf("scanning session issue: %w", err)
		}
		iss.OccurredAt = parseTime(occurred)
		iss.Type = domain.IssueType(issType)
		iss.Severity = domain.IssueSeverity(severity)
		iss.Resolved = intToBool(resolved)
		iss.ResolvedAt = parseNullableTime(resolvedAt)
		s.Issues = append(s.Issues, iss)
	}
	return issueRows.Err()
}

func scanSession(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var started, status, created, updated string
	var ended, paused sql.NullString
	err := row.Scan(&s.ID, &s.UserID, &s.WorkTypeID, &s.TemplateID, &s.TemplateVersion,
		&started, &ended, &status, &s.Notes, &s.CancelReason, &paused, &s.PausedSec, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}
	s.StartedAt = parseTime(started)
	s.EndedAt = parseNullableTime(ended)
	s.Status = domain.SessionStatus(status)
	s.PausedAt = parseNullableTime(paused)
	s.CreatedAt = parseTime(created)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}
