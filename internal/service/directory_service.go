package service

import (
	"context"
	"fmt"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required"`
	EIN         string  `json:"ein"`
	IsNonprofit bool    `json:"is_nonprofit"`
	UserID      string  `json:"user_id" binding:"omitempty,uuid"` // Points account
	TaxPeriod   *string `json:"tax_period"`
}

type CreateListingRequest struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Price          string `json:"price"`
	PointsValue    int64  `json:"points_value" binding:"gte=0"`
	AcceptsPoints  bool   `json:"accepts_points"`
	IsService      bool   `json:"is_service"`
}

// DirectoryService registers the organizations and listings the rule
// engines read.
type DirectoryService interface {
	CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*model.Organization, error)
	GetOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	CreateListing(ctx context.Context, req CreateListingRequest) (*model.Listing, error)
}

type directoryService struct {
	orgRepo     repository.OrganizationRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewDirectoryService(orgRepo repository.OrganizationRepository, listingRepo repository.ListingRepository, userRepo repository.UserRepository) DirectoryService {
	return &directoryService{orgRepo: orgRepo, listingRepo: listingRepo, userRepo: userRepo}
}

func (s *directoryService) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*model.Organization, error) {
	org := &model.Organization{
		Name:        req.Name,
		EIN:         req.EIN,
		IsNonprofit: req.IsNonprofit,
		TaxPeriod:   req.TaxPeriod,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: user_id", ErrInvalidInput)
		}
		if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
			return nil, wrapLookup(err, "user")
		}
		org.UserID = &userID
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

func (s *directoryService) GetOrganization(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapLookup(err, "organization")
	}
	return org, nil
}

func (s *directoryService) CreateListing(ctx context.Context, req CreateListingRequest) (*model.Listing, error) {
	orgID, err := uuid.Parse(req.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("%w: organization_id", ErrInvalidInput)
	}
	if req.PointsValue < 0 {
		return nil, fmt.Errorf("%w: points_value must be non-negative", ErrInvalidInput)
	}
	price := decimal.Zero
	if req.Price != "" {
		price, err = decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: price", ErrInvalidAmount)
		}
	}
	if _, err := s.orgRepo.FindByID(ctx, orgID); err != nil {
		return nil, wrapLookup(err, "organization")
	}

	listing := &model.Listing{
		OrganizationID: orgID,
		Title:          req.Title,
		Description:    req.Description,
		Price:          price,
		PointsValue:    req.PointsValue,
		AcceptsPoints:  req.AcceptsPoints,
		IsService:      req.IsService,
	}
	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return listing, nil
}
