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

// SQLiteSalaryRepo implements SalaryRepo on a SQLite database. Rows are a
// rebuildable cache keyed by (user, period type, period start).
type SQLiteSalaryRepo struct {
	db db.DBTX
}

// NewSQLiteSalaryRepo creates a new SQLiteSalaryRepo.
func NewSQLiteSalaryRepo(db db.DBTX) *SQLiteSalaryRepo {
	return &SQLiteSalaryRepo{db: db}
}

const salaryCols = `id, user_id, period_type, period_start, period_end, total_amount,
	work_days, total_hours, base_pay, overtime_pay, deductions, created_at, updated_at`

func (r *SQLiteSalaryRepo) Upsert(ctx context.Context, s *domain.Salary) error {
	query := `INSERT INTO salaries (` + salaryCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, period_type, period_start) DO UPDATE SET
			period_end = excluded.period_end,
			total_amount = excluded.total_amount,
			work_days = excluded.work_days,
			total_hours = excluded.total_hours,
			base_pay = excluded.base_pay,
			overtime_pay = excluded.overtime_pay,
			deductions = excluded.deductions,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.UserID, string(s.PeriodType), fmtTime(s.PeriodStart), fmtTime(s.PeriodEnd),
		s.TotalAmount, s.WorkDays, s.TotalHours, s.BasePay, s.OvertimePay, s.Deductions,
		fmtTime(s.CreatedAt), fmtTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting salary: %w", err)
	}
	return nil
}

func (r *SQLiteSalaryRepo) Get(ctx context.Context, userID string, pt domain.PeriodType, periodStart time.Time) (*domain.Salary, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+salaryCols+` FROM salaries WHERE user_id = ? AND period_type = ? AND period_start = ?`,
		userID, string(pt), fmtTime(periodStart))
	s, err := scanSalary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("salary %s/%s: %w", pt, periodStart.Format("2006-01-02"), domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteSalaryRepo) ListByUser(ctx context.Context, userID string, pt domain.PeriodType) ([]*domain.Salary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+salaryCols+` FROM salaries WHERE user_id = ? AND period_type = ? ORDER BY period_start DESC`,
		userID, string(pt))
	if err != nil {
		return nil, fmt.Errorf("listing salaries: %w", err)
	}
	defer rows.Close()

	var out []*domain.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSalary(row rowScanner) (*domain.Salary, error) {
	var s domain.Salary
	var pt, start, end, created, updated string
	err := row.Scan(&s.ID, &s.UserID, &pt, &start, &end, &s.TotalAmount,
		&s.WorkDays, &s.TotalHours, &s.BasePay, &s.OvertimePay, &s.Deductions, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning salary: %w", err)
	}
	s.PeriodType = domain.PeriodType(pt)
	s.PeriodStart = parseTime(start)
	s.PeriodEnd = parseTime(end)
	s.CreatedAt = parseTime(created)
	s.UpdatedAt = parseTime(updated)
	return &s, nil
}
