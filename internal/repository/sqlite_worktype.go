package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteWorkTypeRepo implements WorkTypeRepo on a SQLite database.
type SQLiteWorkTypeRepo struct {
	db db.DBTX
}

// NewSQLiteWorkTypeRepo creates a new SQLiteWorkTypeRepo.
func NewSQLiteWorkTypeRepo(db db.DBTX) *SQLiteWorkTypeRepo {
	return &SQLiteWorkTypeRepo{db: db}
}

const workTypeCols = `id, user_id, category_id, name, color, icon, hourly_rate, daily_rate,
	notification_time, is_active, sort_order, created_at, updated_at`

func (r *SQLiteWorkTypeRepo) Create(ctx context.Context, w *domain.WorkType) error {
	query := `INSERT INTO work_types (` + workTypeCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.UserID, nullableStrToValue(w.CategoryID), w.Name, w.Color, w.Icon,
		nullableInt64ToValue(w.HourlyRate), nullableInt64ToValue(w.DailyRate),
		w.NotificationTime, boolToInt(w.Active), w.SortOrder,
		fmtTime(w.CreatedAt), fmtTime(w.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work type: %w", err)
	}
	return nil
}

func (r *SQLiteWorkTypeRepo) GetByID(ctx context.Context, id string) (*domain.WorkType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workTypeCols+` FROM work_types WHERE id = ?`, id)
	w, err := scanWorkType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work type %s: %w", id, domain.ErrNotFound)
	}
	return w, err
}

func (r *SQLiteWorkTypeRepo) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkType, error) {
	query := `SELECT ` + workTypeCols + ` FROM work_types WHERE user_id = ?`
	if !includeInactive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing work types: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkType
	for rows.Next() {
		w, err := scanWorkType(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// CountByCategory counts every work type referencing the category, archived
// ones included. Category hard-delete is gated on this count.
func (r *SQLiteWorkTypeRepo) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM work_types WHERE category_id = ?`, categoryID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting work types by category: %w", err)
	}
	return n, nil
}

func (r *SQLiteWorkTypeRepo) Update(ctx context.Context, w *domain.WorkType) error {
	query := `UPDATE work_types
		SET category_id = ?, name = ?, color = ?, icon = ?, hourly_rate = ?, daily_rate = ?,
		    notification_time = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableStrToValue(w.CategoryID), w.Name, w.Color, w.Icon,
		nullableInt64ToValue(w.HourlyRate), nullableInt64ToValue(w.DailyRate),
		w.NotificationTime, boolToInt(w.Active), w.SortOrder, fmtTime(w.UpdatedAt), w.ID)
	if err != nil {
		return fmt.Errorf("updating work type: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work type %s: %w", w.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteWorkTypeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_types WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work type: %w", err)
	}
	return nil
}

func scanWorkType(row rowScanner) (*domain.WorkType, error) {
	var w domain.WorkType
	var categoryID sql.NullString
	var hourly, daily sql.NullInt64
	var active int
	var created, updated string
	err := row.Scan(&w.ID, &w.UserID, &categoryID, &w.Name, &w.Color, &w.Icon,
		&hourly, &daily, &w.NotificationTime, &active, &w.SortOrder, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work type: %w", err)
	}
	if categoryID.Valid {
		w.CategoryID = &categoryID.String
	}
	if hourly.Valid {
		w.HourlyRate = &hourly.Int64
	}
	if daily.Valid {
		w.DailyRate = &daily.Int64
	}
	w.Active = intToBool(active)
	w.CreatedAt = parseTime(created)
	w.UpdatedAt = parseTime(updated)
	return &w, nil
}
