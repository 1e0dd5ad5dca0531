package repository

import (
	"context"
	"strings"

	"impactcore/internal/model"

	"gorm.io/gorm"
)

// StateTaxRuleRepository stores the per-state sales tax reference table.
type StateTaxRuleRepository interface {
	Create(ctx context.Context, rule *model.StateTaxRule) error
	Update(ctx context.Context, rule *model.StateTaxRule) error
	Delete(ctx context.Context, stateCode string) error
	FindByState(ctx context.Context, stateCode string) (*model.StateTaxRule, error)
	List(ctx context.Context, page, limit int) ([]model.StateTaxRule, int64, error)
}

type stateTaxRuleRepository struct {
	db *gorm.DB
}

func NewStateTaxRuleRepository(db *gorm.DB) StateTaxRuleRepository {
	return &stateTaxRuleRepository{db: db}
}

// NormalizeState upper-cases and trims a state code.
func NormalizeState(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *stateTaxRuleRepository) Create(ctx context.Context, rule *model.StateTaxRule) error {
	rule.StateCode = NormalizeState(rule.StateCode)
	return GetDB(ctx, r.db).Create(rule).Error
}

func (r *stateTaxRuleRepository) Update(ctx context.Context, rule *model.StateTaxRule) error {
	rule.StateCode = NormalizeState(rule.StateCode)
	return GetDB(ctx, r.db).Save(rule).Error
}

func (r *stateTaxRuleRepository) Delete(ctx context.Context, stateCode string) error {
	return GetDB(ctx, r.db).Where("state_code = ?", NormalizeState(stateCode)).Delete(&model.StateTaxRule{}).Error
}

func (r *stateTaxRuleRepository) FindByState(ctx context.Context, stateCode string) (*model.StateTaxRule, error) {
	var rule model.StateTaxRule
	if err := GetDB(ctx, r.db).First(&rule, "state_code = ?", NormalizeState(stateCode)).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *stateTaxRuleRepository) List(ctx context.Context, page, limit int) ([]model.StateTaxRule, int64, error) {
	var rules []model.StateTaxRule
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.StateTaxRule{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("state_code asc").Offset(offset).Limit(limit).Find(&rules).Error; err != nil {
		return nil, 0, err
	}

	return rules, total, nil
}
