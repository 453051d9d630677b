package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteCategoryRepo implements CategoryRepo on a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

// NewSQLiteCategoryRepo creates a new SQLiteCategoryRepo.
func NewSQLiteCategoryRepo(db db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: db}
}

const categoryCols = `id, user_id, name, color, icon, is_active, sort_order, created_at, updated_at`

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.WorkCategory) error {
	query := `INSERT INTO work_categories (` + categoryCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Name, c.Color, c.Icon,
		boolToInt(c.Active), c.SortOrder, fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.WorkCategory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM work_categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("work category %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCategoryRepo) ListByUser(ctx context.Context, userID string, includeInactive bool) ([]*domain.WorkCategory, error) {
	query := `SELECT ` + categoryCols + ` FROM work_categories WHERE user_id = ?`
	if !includeInactive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing work categories: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.WorkCategory) error {
	query := `UPDATE work_categories
		SET name = ?, color = ?, icon = ?, is_active = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Color, c.Icon, boolToInt(c.Active), c.SortOrder, fmtTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating work category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("work category %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work category: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*domain.WorkCategory, error) {
	var c domain.WorkCategory
	var active int
	var created, updated string
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &active, &c.SortOrder, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work category: %w", err)
	}
	c.Active = intToBool(active)
	c.CreatedAt = parseTime(created)
	c.UpdatedAt = parseTime(updated)
	return &c, nil
}
