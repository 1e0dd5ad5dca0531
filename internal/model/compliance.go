package model

import "time"

// Compliance status constants
const (
	ComplianceMissing = "missing"
	ComplianceInvalid = "invalid"
	ComplianceCurrent = "current"
	ComplianceExpired = "expired"
)

// ComplianceRecord is the derived filing status of an organization. It is
// produced by evaluation and never edited afterwards.
type ComplianceRecord struct {
	Identifier       string     `json:"identifier,omitempty"`
	TaxPeriod        *string    `json:"tax_period"`
	NormalizedPeriod string     `json:"normalized_period,omitempty"`
	PeriodEndDate    *time.Time `json:"period_end_date,omitempty"`
	CheckedAt        time.Time  `json:"checked_at"`
	Status           string     `json:"status"`
	MonthsSince      *int       `json:"months_since_period,omitempty"`
	ThresholdMonths  int        `json:"threshold_months"`
	IsExpired        bool       `json:"is_expired"`
	ShouldLock       bool       `json:"should_lock"`
}
