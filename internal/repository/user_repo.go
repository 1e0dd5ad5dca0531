package repository

import (
	"context"
	"sort"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines data access for users and their points balances.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*model.User, error)
	DebitPoints(ctx context.Context, id uuid.UUID, points int64) (bool, error)
	CreditPoints(ctx context.Context, id uuid.UUID, points int64) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LockForUpdate row-locks the given users in ascending id order so two
// settlements touching the same pair cannot deadlock. Must run inside RunInTx.
func (r *userRepository) LockForUpdate(ctx context.Context, ids ...uuid.UUID) (map[uuid.UUID]*model.User, error) {
	ordered := append([]uuid.UUID(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	locked := make(map[uuid.UUID]*model.User, len(ordered))
	for _, id := range ordered {
		if _, seen := locked[id]; seen {
			continue
		}
		var user model.User
		if err := forUpdate(GetDB(ctx, r.db)).First(&user, "id = ?", id).Error; err != nil {
			return nil, err
		}
		locked[id] = &user
	}
	return locked, nil
}

// DebitPoints subtracts points only if the balance covers them. It reports
// false without error when the balance is insufficient.
func (r *userRepository) DebitPoints(ctx context.Context, id uuid.UUID, points int64) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.User{}).
		Where("id = ? AND points_balance >= ?", id, points).
		Update("points_balance", gorm.Expr("points_balance - ?", points))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) CreditPoints(ctx context.Context, id uuid.UUID, points int64) error {
	res := GetDB(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		Update("points_balance", gorm.Expr("points_balance + ?", points))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
