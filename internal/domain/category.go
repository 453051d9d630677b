package domain

import "time"

// WorkCategory groups work types for display and filtering. Categories are
// soft-deleted via Active; a category referenced by work types is never
// hard-deleted.
type WorkCategory struct {
	ID        string
	UserID    string
	Name      string
	Color     string
	Icon      string
	Active    bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields a category must carry before persistence.
func (c *WorkCategory) Validate() error {
	if c.Name == "" {
		return Validationf("category name is required")
	}
	if c.UserID == "" {
		return Validationf("category user id is required")
	}
	return nil
}
