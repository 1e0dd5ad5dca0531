package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"impactcore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exemption decision reasons, one per check in evaluation order.
const (
	ReasonMissingBuyerOrState = "missing_buyer_or_state"
	ReasonBuyerNotNonprofit   = "buyer_not_nonprofit"
	ReasonUnknownState        = "unknown_state"
	ReasonStateNotExempt      = "state_not_exempt"
	ReasonNotCharitableUse    = "not_charitable_use"
	ReasonCertificateRequired = "certificate_required"
	ReasonLookupFailed        = "lookup_failed"
	ReasonExempt              = "exempt"
)

type ExemptionRequest struct {
	BuyerID         *uuid.UUID
	StateCode       *string
	IsCharitableUse bool
	IsService       bool
}

type ExemptionDecision struct {
	Exempt              bool   `json:"is_exempt"`
	Reason              string `json:"reason"`
	StateCode           string `json:"state_code,omitempty"`
	StateStatus         string `json:"state_status,omitempty"`
	Policy              string `json:"goods_vs_services_policy,omitempty"`
	RequiresCertificate bool   `json:"requires_certificate"`
	IsService           bool   `json:"is_service"`
}

// ExemptionEvaluator decides sales tax exemption for a nonprofit purchase.
type ExemptionEvaluator interface {
	QualifiesForExemption(ctx context.Context, req ExemptionRequest) bool
	Evaluate(ctx context.Context, req ExemptionRequest) ExemptionDecision
}

type exemptionService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	ruleRepo repository.StateTaxRuleRepository
	certRepo repository.CertificateRepository
	now      func() time.Time
	logger   *slog.Logger
}

func NewExemptionService(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	ruleRepo repository.StateTaxRuleRepository,
	certRepo repository.CertificateRepository,
	now func() time.Time,
	logger *slog.Logger,
) ExemptionEvaluator {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &exemptionService{
		userRepo: userRepo,
		orgRepo:  orgRepo,
		ruleRepo: ruleRepo,
		certRepo: certRepo,
		now:      now,
		logger:   logger,
	}
}

func (s *exemptionService) QualifiesForExemption(ctx context.Context, req ExemptionRequest) bool {
	return s.Evaluate(ctx, req).Exempt
}

// Evaluate runs the checks in order and stops at the first failure. Lookup
// errors other than a missing row count as "not exempt".
func (s *exemptionService) Evaluate(ctx context.Context, req ExemptionRequest) ExemptionDecision {
	decision := ExemptionDecision{IsService: req.IsService}

	if req.BuyerID == nil || req.StateCode == nil || repository.NormalizeState(*req.StateCode) == "" {
		decision.Reason = ReasonMissingBuyerOrState
		return decision
	}
	decision.StateCode = repository.NormalizeState(*req.StateCode)

	nonprofit, err := s.buyerIsNonprofit(ctx, *req.BuyerID)
	if err != nil {
		return s.lookupFailed(decision, "buyer", err)
	}
	if !nonprofit {
		decision.Reason = ReasonBuyerNotNonprofit
		return decision
	}

	rule, err := s.ruleRepo.FindByState(ctx, decision.StateCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			decision.Reason = ReasonUnknownState
			return decision
		}
		return s.lookupFailed(decision, "state tax rule", err)
	}
	decision.StateStatus = rule.Status
	decision.Policy = rule.GoodsVsServicesPolicy
	decision.RequiresCertificate = rule.RequiresCertificate

	if !rule.ExemptCapable() {
		decision.Reason = ReasonStateNotExempt
		return decision
	}

	if !req.IsCharitableUse {
		decision.Reason = ReasonNotCharitableUse
		return decision
	}

	if rule.RequiresCertificate {
		valid, err := s.hasValidCertificate(ctx, *req.BuyerID, decision.StateCode)
		if err != nil {
			return s.lookupFailed(decision, "exemption certificate", err)
		}
		if !valid {
			decision.Reason = ReasonCertificateRequired
			return decision
		}
	}

	decision.Exempt = true
	decision.Reason = ReasonExempt
	return decision
}

func (s *exemptionService) buyerIsNonprofit(ctx context.Context, buyerID uuid.UUID) (bool, error) {
	buyer, err := s.userRepo.GetByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if buyer.OrganizationID == nil {
		return false, nil
	}
	org, err := s.orgRepo.FindByID(ctx, *buyer.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return org.IsNonprofit, nil
}

func (s *exemptionService) hasValidCertificate(ctx context.Context, buyerID uuid.UUID, stateCode string) (bool, error) {
	certs, err := s.certRepo.ListForOwnerState(ctx, buyerID, stateCode)
	if err != nil {
		return false, err
	}
	now := s.now()
	for i := range certs {
		if certs[i].IsValid(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *exemptionService) lookupFailed(decision ExemptionDecision, what string, err error) ExemptionDecision {
	s.logger.Error("exemption lookup failed", "lookup", what, "state", decision.StateCode, "error", err)
	decision.Exempt = false
	decision.Reason = ReasonLookupFailed
	return decision
}
