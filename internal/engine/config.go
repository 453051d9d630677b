package engine

import (
	"os"
	"strconv"

	"github.com/alexanderramin/turno/internal/payroll"
)

// Config holds the lifecycle and pay policy knobs of the session engine.
type Config struct {
	// RequireMandatory rejects completion while mandatory checklist items
	// are neither completed nor skipped.
	RequireMandatory bool

	// Pay carries the earnings policy (full-day threshold, pause handling).
	Pay payroll.Policy
}

// DefaultConfig returns the observed defaults: mandatory items are advisory,
// a full day is 8 hours, paused time is paid.
func DefaultConfig() Config {
	return Config{
		RequireMandatory: false,
		Pay:              payroll.DefaultPolicy(),
	}
}

// LoadConfig reads engine configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TURNO_REQUIRE_MANDATORY"); v != "" {
		cfg.RequireMandatory, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TURNO_UNPAID_PAUSES"); v != "" {
		cfg.Pay.UnpaidPauses, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TURNO_FULL_DAY_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Pay.FullDayMin = n
		}
	}

	return cfg
}
