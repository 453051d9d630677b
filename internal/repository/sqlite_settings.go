package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/domain"
)

// SQLiteSettingsRepo implements SettingsRepo on a SQLite database.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(db db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context, userID string) (*domain.UserSettings, error) {
	var s domain.UserSettings
	var created, updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, timezone, default_work_type, created_at, updated_at
		 FROM user_settings WHERE user_id = ?`, userID).
		Scan(&s.UserID, &s.Timezone, &s.DefaultWorkType, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.UserSettings{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user settings: %w", err)
	}
	s.CreatedAt = parseTime(created)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}

func (r *SQLiteSettingsRepo) Upsert(ctx context.Context, s *domain.UserSettings) error {
	query := `INSERT INTO user_settings (user_id, timezone, default_work_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			timezone = excluded.timezone,
			default_work_type = excluded.default_work_type,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.UserID, s.Timezone, s.DefaultWorkType, fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting user settings: %w", err)
	}
	return nil
}
