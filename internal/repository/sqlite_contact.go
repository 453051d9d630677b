package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteContactRepo implements ContactRepo on a SQLite database.
type SQLiteContactRepo struct {
	db db.DBTX
}

// NewSQLiteContactRepo creates a new SQLiteContactRepo.
func NewSQLiteContactRepo(db db.DBTX) *SQLiteContactRepo {
	return &SQLiteContactRepo{db: db}
}

func (r *SQLiteContactRepo) Create(ctx context.Context, c *domain.EmergencyContact) error {
	query := `INSERT INTO emergency_contacts
		(id, work_type_id, name, phone, role, email, notes, is_primary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.WorkTypeID, c.Name, c.Phone, c.Role, c.Email, c.Notes,
		boolToInt(c.Primary), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting emergency contact: %w", err)
	}
	return nil
}

func (r *SQLiteContactRepo) ListByWorkType(ctx context.Context, workTypeID string) ([]*domain.EmergencyContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, work_type_id, name, phone, role, email, notes, is_primary, created_at, updated_at
		 FROM emergency_contacts WHERE work_type_id = ?
		 ORDER BY is_primary DESC, name`, workTypeID)
	if err != nil {
		return nil, fmt.Errorf("listing emergency contacts: %w", err)
	}
	defer rows.Close()

	var out []*domain.EmergencyContact
	for rows.Next() {
		var c domain.EmergencyContact
		var primary int
		var created, updated string
		if err := rows.Scan(&c.ID, &c.WorkTypeID, &c.Name, &c.Phone, &c.Role,
			&c.Email, &c.Notes, &primary, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning emergency contact: %w", err)
		}
		c.Primary = intToBool(primary)
		c.CreatedAt = parseTime(created)
		c.UpdatedAt = parseTime(updated)
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *SQLiteContactRepo) Update(ctx context.Context, c *domain.EmergencyContact) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE emergency_contacts
		 SET name = ?, phone = ?, role = ?, email = ?, notes = ?, is_primary = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Phone, c.Role, c.Email, c.Notes, boolToInt(c.Primary), fmtTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating emergency contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("emergency contact %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteContactRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting emergency contact: %w", err)
	}
	return nil
}
