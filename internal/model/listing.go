package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Listing is a marketplace gig or barter offering published by an organization.
type Listing struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	Title          string          `gorm:"type:varchar(255);not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"price"`
	PointsValue    int64           `gorm:"type:bigint;not null;default:0" json:"points_value"`
	AcceptsPoints  bool            `gorm:"default:false" json:"accepts_points"`
	IsService      bool            `gorm:"default:false" json:"is_service"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	assignID(&l.ID)
	return nil
}
