package repository

import (
	"context"
	"time"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	UpdateCompliance(ctx context.Context, id uuid.UUID, status string, checkedAt time.Time, locked bool) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	return GetDB(ctx, r.db).Create(org).Error
}

func (r *organizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := GetDB(ctx, r.db).First(&org, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) UpdateCompliance(ctx context.Context, id uuid.UUID, status string, checkedAt time.Time, locked bool) error {
	return GetDB(ctx, r.db).Model(&model.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"compliance_status":     status,
			"compliance_checked_at": checkedAt,
			"compliance_locked":     locked,
		}).Error
}
