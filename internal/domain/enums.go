package domain

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// IsOpen reports whether the status counts toward the one-open-session rule.
func (s SessionStatus) IsOpen() bool {
	return s == SessionActive || s == SessionPaused
}

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemCompleted ItemStatus = "completed"
	ItemSkipped   ItemStatus = "skipped"
)

// ValidItemStatuses is the canonical set of accepted progress status strings.
var ValidItemStatuses = map[string]bool{
	"pending": true, "completed": true, "skipped": true,
}

type ItemCategory string

const (
	CategorySafety      ItemCategory = "safety"
	CategoryPreparation ItemCategory = "preparation"
	CategoryExecution   ItemCategory = "execution"
	CategoryCleanup     ItemCategory = "cleanup"
)

// ValidItemCategories is the canonical set of accepted checklist item categories.
var ValidItemCategories = map[string]bool{
	"safety": true, "preparation": true, "execution": true, "cleanup": true,
}

type IssueType string

const (
	IssueSafety    IssueType = "safety"
	IssueEquipment IssueType = "equipment"
	IssueDelay     IssueType = "delay"
	IssueOther     IssueType = "other"
)

type IssueSeverity string

const (
	SeverityLow      IssueSeverity = "low"
	SeverityMedium   IssueSeverity = "medium"
	SeverityHigh     IssueSeverity = "high"
	SeverityCritical IssueSeverity = "critical"
)

type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// ValidPeriodTypes is the canonical set of accepted salary period strings.
var ValidPeriodTypes = map[string]bool{
	"daily": true, "weekly": true, "monthly": true,
}

// RateBasis identifies which rate a session's earnings were computed from.
type RateBasis string

const (
	BasisHourly RateBasis = "hourly"
	BasisDaily  RateBasis = "daily"
	BasisNone   RateBasis = "none"
)
