package domain

import "time"

// WorkType is a billable kind of work. Rates are stored in the smallest
// currency unit; either or both of HourlyRate and DailyRate may be set, and
// the payroll package picks the effective one deterministically.
type WorkType struct {
	ID         string
	UserID     string
	CategoryID *string
	Name       string
	Color      string
	Icon       string

	HourlyRate *int64
	DailyRate  *int64

	// NotificationTime is an optional HH:MM reminder hint. Stored and
	// displayed only; delivery is out of scope.
	NotificationTime string

	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a work type must carry before persistence.
func (w *WorkType) Validate() error {
	if w.Name == "" {
		return Validationf("work type name is required")
	}
	if w.UserID == "" {
		return Validationf("work type user id is required")
	}
	if w.HourlyRate != nil && *w.HourlyRate < 0 {
		return Validationf("hourly rate must not be negative")
	}
	if w.DailyRate != nil && *w.DailyRate < 0 {
		return Validationf("daily rate must not be negative")
	}
	return nil
}

// HasRate reports whether at least one rate is configured.
func (w *WorkType) HasRate() bool {
	return w.HourlyRate != nil || w.DailyRate != nil
}

// EmergencyContact is a person to reach while working a given work type.
type EmergencyContact struct {
	ID         string
	WorkTypeID string
	Name       string
	Phone      string
	Role       string
	Email      string
	Notes      string
	Primary    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the fields a contact must carry before persistence.
func (c *EmergencyContact) Validate() error {
	if c.Name == "" {
		return Validationf("contact name is required")
	}
	if c.Phone == "" {
		return Validationf("contact phone is required")
	}
	return nil
}
