package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is a registered charity or business on the marketplace.
// UserID links the organization to the user account that holds its points.
type Organization struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name                string         `gorm:"type:varchar(255);not null" json:"name"`
	EIN                 string         `gorm:"type:varchar(20);index" json:"ein"`
	IsNonprofit         bool           `gorm:"default:false" json:"is_nonprofit"`
	UserID              *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	TaxPeriod           *string        `gorm:"type:varchar(20)" json:"tax_period"` // Raw filing period as received, usually YYYYMM
	ComplianceStatus    string         `gorm:"type:varchar(20);index" json:"compliance_status"`
	ComplianceCheckedAt *time.Time     `json:"compliance_checked_at"`
	ComplianceLocked    bool           `gorm:"default:false" json:"compliance_locked"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}
