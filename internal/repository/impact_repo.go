package repository

import (
	"context"
	"fmt"
	"time"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SourceTotal is the summed points of one source type.
type SourceTotal struct {
	SourceType string
	Total      float64
}

// UserTotal is the summed points of one user.
type UserTotal struct {
	UserID uuid.UUID
	Name   string
	Total  float64
}

type ImpactRepository interface {
	Create(ctx context.Context, point *model.ImpactPoint) error
	CreateOnce(ctx context.Context, point *model.ImpactPoint) (bool, error)
	Exists(ctx context.Context, userID uuid.UUID, sourceType, sourceID string) (bool, error)
	DeleteBySource(ctx context.Context, sourceType, sourceID string) (int64, error)
	CountBetween(ctx context.Context, userID uuid.UUID, sourceType string, from, to time.Time) (int64, error)
	SumBySource(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SourceTotal, error)
	TopUsers(ctx context.Context, from, to time.Time, limit int) ([]UserTotal, error)
}

type impactRepository struct {
	db *gorm.DB
}

func NewImpactRepository(db *gorm.DB) ImpactRepository {
	return &impactRepository{db: db}
}

func (r *impactRepository) Create(ctx context.Context, point *model.ImpactPoint) error {
	return GetDB(ctx, r.db).Create(point).Error
}

// CreateOnce inserts point unless the user already holds a row for the same
// source event, and reports whether a row was written. The conflict is
// resolved by idx_impact_source_once so concurrent callers cannot both insert.
func (r *impactRepository) CreateOnce(ctx context.Context, point *model.ImpactPoint) (bool, error) {
	res := GetDB(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(point)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *impactRepository) Exists(ctx context.Context, userID uuid.UUID, sourceType, sourceID string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ImpactPoint{}).
		Where("user_id = ? AND source_type = ? AND source_id = ?", userID, sourceType, sourceID).
		Count(&count).Error
	return count > 0, err
}

func (r *impactRepository) DeleteBySource(ctx context.Context, sourceType, sourceID string) (int64, error) {
	res := GetDB(ctx, r.db).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Delete(&model.ImpactPoint{})
	return res.RowsAffected, res.Error
}

// CountBetween counts a user's rows of sourceType with from <= activity_date < to.
func (r *impactRepository) CountBetween(ctx context.Context, userID uuid.UUID, sourceType string, from, to time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.ImpactPoint{}).
		Where("user_id = ? AND source_type = ? AND activity_date >= ? AND activity_date < ?", userID, sourceType, from, to).
		Count(&count).Error
	return count, err
}

// SumBySource totals a user's points per source type with from <= activity_date <= to.
func (r *impactRepository) SumBySource(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SourceTotal, error) {
	var totals []SourceTotal
	if err := GetDB(ctx, r.db).Model(&model.ImpactPoint{}).
		Select("source_type, COALESCE(SUM(points), 0) as total").
		Where("user_id = ? AND activity_date >= ? AND activity_date <= ?", userID, from, to).
		Group("source_type").
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to sum impact points: %w", err)
	}
	return totals, nil
}

func (r *impactRepository) TopUsers(ctx context.Context, from, to time.Time, limit int) ([]UserTotal, error) {
	var totals []UserTotal
	if err := GetDB(ctx, r.db).Table("impact_points").
		Select("impact_points.user_id as user_id, users.name as name, SUM(impact_points.points) as total").
		Joins("JOIN users ON users.id = impact_points.user_id").
		Where("impact_points.activity_date >= ? AND impact_points.activity_date <= ?", from, to).
		Group("impact_points.user_id, users.name").
		Order("total DESC").
		Limit(limit).
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	return totals, nil
}
