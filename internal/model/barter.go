package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Barter transaction status constants
const (
	BarterPending = "pending"
	BarterSettled = "settled"
)

// BarterTransaction links two organizations exchanging listings. A positive
// PointsDelta means the requesting party owes the responding party.
type BarterTransaction struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	RequestingOrgID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"requesting_org_id"`
	RequestingOrg      *Organization `gorm:"foreignKey:RequestingOrgID" json:"requesting_org,omitempty"`
	RespondingOrgID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"responding_org_id"`
	RespondingOrg      *Organization `gorm:"foreignKey:RespondingOrgID" json:"responding_org,omitempty"`
	RequestedListingID uuid.UUID     `gorm:"type:uuid;not null" json:"requested_listing_id"`
	OfferedListingID   uuid.UUID     `gorm:"type:uuid;not null" json:"offered_listing_id"`
	PointsDelta        int64         `gorm:"type:bigint;not null" json:"points_delta"`
	Status             string        `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	SettledAt          *time.Time    `json:"settled_at"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (t *BarterTransaction) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// PointSettlement is the immutable record of one points movement between
// two accounts. Rows are never updated or deleted.
type PointSettlement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"transaction_id"`
	FromUserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"from_user_id"`
	ToUserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"to_user_id"`
	Points        int64     `gorm:"type:bigint;not null" json:"points"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

func (s *PointSettlement) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}
