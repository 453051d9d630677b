package domain

import "time"

// Salary is a cached period aggregate over completed sessions. It is always
// rebuilt from session records, never hand-edited.
type Salary struct {
	ID          string
	UserID      string
	PeriodType  PeriodType
	PeriodStart time.Time
	PeriodEnd   time.Time // exclusive

	TotalAmount int64
	WorkDays    int
	TotalHours  float64
	BasePay     int64
	OvertimePay int64
	Deductions  int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserSettings holds per-user preferences the engine and aggregator consult.
type UserSettings struct {
	UserID          string
	Timezone        string
	DefaultWorkType string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Location resolves the configured timezone, falling back to UTC.
func (u *UserSettings) Location() *time.Location {
	if u == nil || u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
