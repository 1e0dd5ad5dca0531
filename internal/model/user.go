package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleMember = "member"
)

// User is a platform party: buyer, volunteer, donor, or the holder of an
// organization's points account.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"type:varchar(255);not null" json:"-"`   // bcrypt hash, never serialized
	Role           string         `gorm:"type:varchar(50);not null" json:"role"` // admin, staff, member
	OrganizationID *uuid.UUID     `gorm:"type:uuid;index" json:"organization_id"` // Nonprofit the user acts for
	Organization   *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	PointsBalance  int64          `gorm:"type:bigint;not null;default:0;check:points_balance >= 0" json:"points_balance"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}
