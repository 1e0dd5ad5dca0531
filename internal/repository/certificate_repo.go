package repository

import (
	"context"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateRepository interface {
	Create(ctx context.Context, cert *model.ExemptionCertificate) error
	Update(ctx context.Context, cert *model.ExemptionCertificate) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ExemptionCertificate, error)
	ListForOwnerState(ctx context.Context, userID uuid.UUID, stateCode string) ([]model.ExemptionCertificate, error)
}

type certificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) Create(ctx context.Context, cert *model.ExemptionCertificate) error {
	cert.StateCode = NormalizeState(cert.StateCode)
	return GetDB(ctx, r.db).Create(cert).Error
}

func (r *certificateRepository) Update(ctx context.Context, cert *model.ExemptionCertificate) error {
	return GetDB(ctx, r.db).Save(cert).Error
}

func (r *certificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ExemptionCertificate, error) {
	var cert model.ExemptionCertificate
	if err := GetDB(ctx, r.db).First(&cert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// ListForOwnerState returns every certificate the user holds for the state,
// newest first. Validity is decided by the caller against its own clock.
func (r *certificateRepository) ListForOwnerState(ctx context.Context, userID uuid.UUID, stateCode string) ([]model.ExemptionCertificate, error) {
	var certs []model.ExemptionCertificate
	err := GetDB(ctx, r.db).
		Where("user_id = ? AND state_code = ?", userID, NormalizeState(stateCode)).
		Order("created_at desc").
		Find(&certs).Error
	return certs, err
}
