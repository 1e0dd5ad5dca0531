package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Impact source type constants
const (
	SourceVolunteer = "volunteer"
	SourceDonation  = "donation"
	SourceFollow    = "follow"
	SourceBonus     = "bonus"
)

// ImpactPoint is one scored activity. Rows are appended when a source event
// is recorded and deleted when it is removed; points are never edited.
type ImpactPoint struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_impact_user_date;uniqueIndex:idx_impact_source_once,priority:1" json:"user_id"`
	SourceType   string    `gorm:"type:varchar(20);not null;index:idx_impact_source;uniqueIndex:idx_impact_source_once,priority:2" json:"source_type"`
	SourceID     string    `gorm:"type:varchar(100);not null;index:idx_impact_source;uniqueIndex:idx_impact_source_once,priority:3" json:"source_id"`
	Points       float64   `gorm:"not null" json:"points"`
	ActivityDate time.Time `gorm:"not null;index:idx_impact_user_date" json:"activity_date"`
	Description  string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *ImpactPoint) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}
