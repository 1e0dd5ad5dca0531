package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// State exemption status constants
const (
	TaxStatusExempt        = "exempt"
	TaxStatusExemptLimited = "exempt_limited"
	TaxStatusNonExempt     = "non_exempt"
	TaxStatusRefundBased   = "refund_based"
	TaxStatusNoStateTax    = "no_state_tax"
)

// Goods vs services policy constants
const (
	PolicyGoodsOnly    = "goods_only"
	PolicyServicesOnly = "services_only"
	PolicyGoodsAndServ = "goods_and_services"
)

// StateTaxRule is reference data describing a state's sales tax and how it
// treats nonprofit purchases. Looked up by state code.
type StateTaxRule struct {
	StateCode             string          `gorm:"type:varchar(2);primaryKey" json:"state_code"`
	StateName             string          `gorm:"type:varchar(100)" json:"state_name"`
	BaseRate              decimal.Decimal `gorm:"type:decimal(6,4);not null" json:"base_rate"` // Percent, e.g. 7.25
	Status                string          `gorm:"type:varchar(20);not null;index" json:"status"`
	GoodsVsServicesPolicy string          `gorm:"type:varchar(30)" json:"goods_vs_services_policy"`
	RequiresCertificate   bool            `gorm:"default:false" json:"requires_certificate"`
	Notes                 string          `gorm:"type:text" json:"notes"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ExemptCapable reports whether the state's status allows a nonprofit
// exemption at all.
func (r *StateTaxRule) ExemptCapable() bool {
	switch r.Status {
	case TaxStatusExempt, TaxStatusExemptLimited, TaxStatusRefundBased:
		return true
	}
	return false
}
