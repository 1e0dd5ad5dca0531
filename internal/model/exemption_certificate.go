package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate status constants
const (
	CertificateApproved = "approved"
	CertificatePending  = "pending"
	CertificateRejected = "rejected"
)

// ExemptionCertificate is stored proof of a buyer's sales tax exemption in a state.
type ExemptionCertificate struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_cert_owner_state" json:"user_id"`
	StateCode     string     `gorm:"type:varchar(2);not null;index:idx_cert_owner_state" json:"state_code"`
	CertificateNo string     `gorm:"type:varchar(100)" json:"certificate_no"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ExpiryDate    *time.Time `json:"expiry_date"` // Nullable = never expires
	ReviewedBy    *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (c *ExemptionCertificate) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}

// IsValid reports whether the certificate is approved and unexpired at now.
func (c *ExemptionCertificate) IsValid(now time.Time) bool {
	if c.Status != CertificateApproved {
		return false
	}
	return c.ExpiryDate == nil || !c.ExpiryDate.Before(now)
}
