package repository

import (
	"context"
	"time"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BarterRepository interface {
	Create(ctx context.Context, txn *model.BarterTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BarterTransaction, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BarterTransaction, error)
	MarkSettled(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateSettlement(ctx context.Context, settlement *model.PointSettlement) error
	FindSettlement(ctx context.Context, transactionID uuid.UUID) (*model.PointSettlement, error)
}

type barterRepository struct {
	db *gorm.DB
}

func NewBarterRepository(db *gorm.DB) BarterRepository {
	return &barterRepository{db: db}
}

func (r *barterRepository) Create(ctx context.Context, txn *model.BarterTransaction) error {
	return GetDB(ctx, r.db).Create(txn).Error
}

func (r *barterRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BarterTransaction, error) {
	var txn model.BarterTransaction
	if err := GetDB(ctx, r.db).
		Preload("RequestingOrg").
		Preload("RespondingOrg").
		First(&txn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *barterRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.BarterTransaction, error) {
	var txn model.BarterTransaction
	if err := forUpdate(GetDB(ctx, r.db)).First(&txn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	// Organizations are loaded separately: FOR UPDATE cannot follow outer joins.
	var orgs []model.Organization
	if err := GetDB(ctx, r.db).Where("id IN ?", []uuid.UUID{txn.RequestingOrgID, txn.RespondingOrgID}).Find(&orgs).Error; err != nil {
		return nil, err
	}
	for i := range orgs {
		switch orgs[i].ID {
		case txn.RequestingOrgID:
			txn.RequestingOrg = &orgs[i]
		case txn.RespondingOrgID:
			txn.RespondingOrg = &orgs[i]
		}
	}
	return &txn, nil
}

func (r *barterRepository) MarkSettled(ctx context.Context, id uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.BarterTransaction{}).
		Where("id = ? AND status = ?", id, model.BarterPending).
		Updates(map[string]interface{}{"status": model.BarterSettled, "settled_at": at}).Error
}

func (r *barterRepository) CreateSettlement(ctx context.Context, settlement *model.PointSettlement) error {
	return GetDB(ctx, r.db).Create(settlement).Error
}

func (r *barterRepository) FindSettlement(ctx context.Context, transactionID uuid.UUID) (*model.PointSettlement, error) {
	var s model.PointSettlement
	if err := GetDB(ctx, r.db).First(&s, "transaction_id = ?", transactionID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
