package repository

import (
	"context"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return GetDB(ctx, r.db).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	var listing model.Listing
	if err := GetDB(ctx, r.db).First(&listing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}
