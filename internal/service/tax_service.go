package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type StateTaxRuleRequest struct {
	StateCode             string `json:"state_code" binding:"required,len=2,alpha"`
	StateName             string `json:"state_name"`
	BaseRate              string `json:"base_rate" binding:"required"` // Percent, e.g. "7.25"
	Status                string `json:"status" binding:"required,oneof=exempt exempt_limited non_exempt refund_based no_state_tax"`
	GoodsVsServicesPolicy string `json:"goods_vs_services_policy" binding:"omitempty,oneof=goods_only services_only goods_and_services"`
	RequiresCertificate   bool   `json:"requires_certificate"`
	Notes                 string `json:"notes"`
}

type TaxRuleResponse struct {
	StateCode             string `json:"state_code"`
	StateName             string `json:"state_name"`
	BaseRate              string `json:"base_rate"`
	Status                string `json:"status"`
	GoodsVsServicesPolicy string `json:"goods_vs_services_policy"`
	RequiresCertificate   bool   `json:"requires_certificate"`
	Notes                 string `json:"notes"`
	UpdatedAt             string `json:"updated_at"`
}

// --- Interface ---

type TaxService interface {
	ListTaxRules(ctx context.Context, page, limit int) ([]TaxRuleResponse, int64, error)
	GetTaxRule(ctx context.Context, state string) (TaxRuleResponse, error)
	CreateTaxRule(ctx context.Context, req StateTaxRuleRequest, actorID *uuid.UUID) (TaxRuleResponse, error)
	UpdateTaxRule(ctx context.Context, state string, req StateTaxRuleRequest, actorID *uuid.UUID) (TaxRuleResponse, error)
	DeleteTaxRule(ctx context.Context, state string, actorID *uuid.UUID) error
}

type taxService struct {
	ruleRepo  repository.StateTaxRuleRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewTaxService(ruleRepo repository.StateTaxRuleRepository, auditRepo repository.AuditRepository, txManager repository.TransactionManager) TaxService {
	return &taxService{ruleRepo: ruleRepo, auditRepo: auditRepo, txManager: txManager}
}

// --- Implementation ---

func (s *taxService) ListTaxRules(ctx context.Context, page, limit int) ([]TaxRuleResponse, int64, error) {
	rules, total, err := s.ruleRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax rules: %w", err)
	}

	res := make([]TaxRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toTaxRuleResponse(r))
	}
	return res, total, nil
}

func (s *taxService) GetTaxRule(ctx context.Context, state string) (TaxRuleResponse, error) {
	rule, err := s.ruleRepo.FindByState(ctx, state)
	if err != nil {
		return TaxRuleResponse{}, wrapLookup(err, "tax rule")
	}
	return toTaxRuleResponse(*rule), nil
}

func (s *taxService) CreateTaxRule(ctx context.Context, req StateTaxRuleRequest, actorID *uuid.UUID) (TaxRuleResponse, error) {
	rule, err := buildTaxRule(req)
	if err != nil {
		return TaxRuleResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.ruleRepo.FindByState(txCtx, rule.StateCode); err == nil {
			return fmt.Errorf("tax rule for %s %w", rule.StateCode, ErrAlreadyExists)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check tax rule: %w", err)
		}
		if err := s.ruleRepo.Create(txCtx, &rule); err != nil {
			return fmt.Errorf("failed to create tax rule: %w", err)
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionCreateTaxRule, rule.StateCode, rule.StateName, req)
	})
	if err != nil {
		return TaxRuleResponse{}, err
	}
	return toTaxRuleResponse(rule), nil
}

func (s *taxService) UpdateTaxRule(ctx context.Context, state string, req StateTaxRuleRequest, actorID *uuid.UUID) (TaxRuleResponse, error) {
	updated, err := buildTaxRule(req)
	if err != nil {
		return TaxRuleResponse{}, err
	}
	if updated.StateCode != repository.NormalizeState(state) {
		return TaxRuleResponse{}, fmt.Errorf("%w: state code cannot be changed", ErrInvalidInput)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.ruleRepo.FindByState(txCtx, state)
		if err != nil {
			return wrapLookup(err, "tax rule")
		}
		updated.CreatedAt = existing.CreatedAt
		if err := s.ruleRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("failed to update tax rule: %w", err)
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionUpdateTaxRule, updated.StateCode, updated.StateName, map[string]interface{}{
			"before": toTaxRuleResponse(*existing),
			"after":  req,
		})
	})
	if err != nil {
		return TaxRuleResponse{}, err
	}
	return toTaxRuleResponse(updated), nil
}

func (s *taxService) DeleteTaxRule(ctx context.Context, state string, actorID *uuid.UUID) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		rule, err := s.ruleRepo.FindByState(txCtx, state)
		if err != nil {
			return wrapLookup(err, "tax rule")
		}
		if err := s.ruleRepo.Delete(txCtx, rule.StateCode); err != nil {
			return fmt.Errorf("failed to delete tax rule: %w", err)
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionDeleteTaxRule, rule.StateCode, rule.StateName, toTaxRuleResponse(*rule))
	})
}

// --- Helpers ---

func buildTaxRule(req StateTaxRuleRequest) (model.StateTaxRule, error) {
	rate, err := decimal.NewFromString(req.BaseRate)
	if err != nil {
		return model.StateTaxRule{}, fmt.Errorf("%w: invalid base_rate: %v", ErrInvalidInput, err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return model.StateTaxRule{}, fmt.Errorf("%w: base_rate must be between 0 and 100", ErrInvalidInput)
	}
	policy := req.GoodsVsServicesPolicy
	if policy == "" {
		policy = model.PolicyGoodsAndServ
	}
	return model.StateTaxRule{
		StateCode:             repository.NormalizeState(req.StateCode),
		StateName:             req.StateName,
		BaseRate:              rate,
		Status:                req.Status,
		GoodsVsServicesPolicy: policy,
		RequiresCertificate:   req.RequiresCertificate,
		Notes:                 req.Notes,
	}, nil
}

func toTaxRuleResponse(r model.StateTaxRule) TaxRuleResponse {
	return TaxRuleResponse{
		StateCode:             r.StateCode,
		StateName:             r.StateName,
		BaseRate:              r.BaseRate.StringFixed(4),
		Status:                r.Status,
		GoodsVsServicesPolicy: r.GoodsVsServicesPolicy,
		RequiresCertificate:   r.RequiresCertificate,
		Notes:                 r.Notes,
		UpdatedAt:             r.UpdatedAt.Format(time.RFC3339),
	}
}
