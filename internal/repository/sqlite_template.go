package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo on a SQLite database. Item
// writes replace the template's full item set; callers run Update inside a
// transaction when atomicity with other writes matters.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

// NewSQLiteTemplateRepo creates a new SQLiteTemplateRepo.
func NewSQLiteTemplateRepo(db db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: db}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ChecklistTemplate) error {
	query := `INSERT INTO checklist_templates (id, work_type_id, name, version, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.WorkTypeID, t.Name, t.Version, boolToInt(t.Active),
		fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting checklist template: %w", err)
	}
	return r.insertItems(ctx, t)
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.ChecklistTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, work_type_id, name, version, is_active, created_at, updated_at
		 FROM checklist_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checklist template %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) GetActiveByWorkType(ctx context.Context, workTypeID string) (*domain.ChecklistTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, work_type_id, name, version, is_active, created_at, updated_at
		 FROM checklist_templates
		 WHERE work_type_id = ? AND is_active = 1
		 ORDER BY updated_at DESC LIMIT 1`, workTypeID)
	t, err := scanTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) ListByWorkType(ctx context.Context, workTypeID string) ([]*domain.ChecklistTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, work_type_id, name, version, is_active, created_at, updated_at
		 FROM checklist_templates WHERE work_type_id = ? ORDER BY created_at`, workTypeID)
	if err != nil {
		return nil, fmt.Errorf("listing checklist templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChecklistTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range out {
		if err := r.loadItems(ctx, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteTemplateRepo) Update(ctx context.Context, t *domain.ChecklistTemplate) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE checklist_templates SET name = ?, version = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		t.Name, t.Version, boolToInt(t.Active), fmtTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("updating checklist template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("checklist template %s: %w", t.ID, domain.ErrNotFound)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE template_id = ?`, t.ID); err != nil {
		return fmt.Errorf("clearing checklist items: %w", err)
	}
	return r.insertItems(ctx, t)
}

func (r *SQLiteTemplateRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checklist_templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting checklist template: %w", err)
	}
	return nil
}

func (r *SQLiteTemplateRepo) insertItems(ctx context.Context, t *domain.ChecklistTemplate) error {
	query := `INSERT INTO checklist_items
		(id, template_id, time_hint, task, mandatory, category, estimated_min, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, it := range t.SortedItems() {
		_, err := r.db.ExecContext(ctx, query,
			it.ID, t.ID, it.TimeHint, it.Task, boolToInt(it.Mandatory), string(it.Category),
			it.EstimatedMin, it.OrderIndex, fmtTime(it.CreatedAt), fmtTime(it.UpdatedAt))
		if err != nil {
			return fmt.Errorf("inserting checklist item %s: %w", it.ID, err)
		}
	}
	return nil
}

func (r *SQLiteTemplateRepo) loadItems(ctx context.Context, t *domain.ChecklistTemplate) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, template_id, time_hint, task, mandatory, category, estimated_min, order_index, created_at, updated_at
		 FROM checklist_items WHERE template_id = ? ORDER BY order_index`, t.ID)
	if err != nil {
		return fmt.Errorf("loading checklist items: %w", err)
	}
	defer rows.Close()

	t.Items = nil
	for rows.Next() {
		var it domain.ChecklistItem
		var mandatory int
		var category, created, updated string
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.TimeHint, &it.Task, &mandatory,
			&category, &it.EstimatedMin, &it.OrderIndex, &created, &updated); err != nil {
			return fmt.Errorf("scanning checklist item: %w", err)
		}
		it.Mandatory = intToBool(mandatory)
		it.Category = domain.ItemCategory(category)
		it.CreatedAt = parseTime(created)
		it.UpdatedAt = parseTime(updated)
		t.Items = append(t.Items, it)
	}
	return rows.Err()
}

func scanTemplate(row rowScanner) (*domain.ChecklistTemplate, error) {
	var t domain.ChecklistTemplate
	var active int
	var created, updated string
	err := row.Scan(&t.ID, &t.WorkTypeID, &t.Name, &t.Version, &active, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning checklist template: %w", err)
	}
	t.Active = intToBool(active)
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	return &t, nil
}
