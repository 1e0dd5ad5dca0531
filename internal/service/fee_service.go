package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"impactcore/internal/repository"
	"impactcore/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods
const (
	PaymentMethodCard   = "card"
	PaymentMethodPoints = "points"
)

// FeeConfig holds the fee percentages, e.g. 5.5 means 5.5%.
type FeeConfig struct {
	PlatformPct decimal.Decimal
	CardPct     decimal.Decimal
	PointsPct   decimal.Decimal
}

// DefaultFeeConfig returns the platform's standard rates.
func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		PlatformPct: decimal.RequireFromString("5.5"),
		CardPct:     decimal.RequireFromString("3.0"),
		PointsPct:   decimal.RequireFromString("1.0"),
	}
}

// ParseFeeConfig builds a FeeConfig from percentage strings. Empty values
// keep the defaults; negative values are rejected.
func ParseFeeConfig(platformPct, cardPct, pointsPct string) (FeeConfig, error) {
	cfg := DefaultFeeConfig()
	fields := []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"platform", platformPct, &cfg.PlatformPct},
		{"card", cardPct, &cfg.CardPct},
		{"points", pointsPct, &cfg.PointsPct},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.raw) == "" {
			continue
		}
		v, err := decimal.NewFromString(strings.TrimSpace(f.raw))
		if err != nil {
			return FeeConfig{}, fmt.Errorf("invalid %s fee percentage %q: %w", f.name, f.raw, err)
		}
		if v.IsNegative() {
			return FeeConfig{}, fmt.Errorf("%s fee percentage must be non-negative, got %s", f.name, f.raw)
		}
		*f.dst = v
	}
	return cfg, nil
}

// FeeInput is one order to price.
type FeeInput struct {
	Amount          decimal.Decimal
	PaymentMethod   string
	SellerState     *string
	AcceptsPoints   bool
	BuyerID         *uuid.UUID
	IsCharitableUse bool
}

// FeeBreakdown is the seller-side settlement of an order. Fees and tax are
// deducted from the seller's proceeds; the buyer always pays Amount.
type FeeBreakdown struct {
	PlatformFee       decimal.Decimal
	PlatformFeePct    decimal.Decimal
	TransactionFee    decimal.Decimal
	TransactionFeePct decimal.Decimal
	SalesTax          decimal.Decimal
	SalesTaxRate      decimal.Decimal
	TotalBuyerPays    decimal.Decimal
	SellerEarnings    decimal.Decimal
	IsExempt          bool
}

// --- DTOs ---

type FeeQuoteRequest struct {
	Amount          string  `json:"amount" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required,oneof=card points"`
	SellerState     *string `json:"seller_state"`
	ListingID       string  `json:"listing_id"`     // When set, acceptance of points is read from the listing
	AcceptsPoints   bool    `json:"accepts_points"` // Used when no listing is given
	BuyerID         string  `json:"buyer_id"`
	IsCharitableUse *bool   `json:"is_charitable_use"` // Defaults to true
}

type FeeQuoteResponse struct {
	PlatformFee       string `json:"platform_fee"`
	PlatformFeePct    string `json:"platform_fee_pct"`
	TransactionFee    string `json:"transaction_fee"`
	TransactionFeePct string `json:"transaction_fee_pct"`
	SalesTax          string `json:"sales_tax"`
	SalesTaxRate      string `json:"sales_tax_rate"`
	TotalBuyerPays    string `json:"total_buyer_pays"`
	SellerEarnings    string `json:"seller_earnings"`
	IsExempt          bool   `json:"is_exempt"`
}

// --- Interface ---

type FeeService interface {
	CalculateFees(ctx context.Context, in FeeInput) (FeeBreakdown, error)
	Quote(ctx context.Context, req FeeQuoteRequest) (FeeQuoteResponse, error)
}

type feeService struct {
	config      FeeConfig
	ruleRepo    repository.StateTaxRuleRepository
	listingRepo repository.ListingRepository
	exemptions  ExemptionEvaluator
	metrics     MetricsCollector
	logger      *slog.Logger
}

func NewFeeService(
	config FeeConfig,
	ruleRepo repository.StateTaxRuleRepository,
	listingRepo repository.ListingRepository,
	exemptions ExemptionEvaluator,
	metrics MetricsCollector,
	logger *slog.Logger,
) FeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &feeService{
		config:      config,
		ruleRepo:    ruleRepo,
		listingRepo: listingRepo,
		exemptions:  exemptions,
		metrics:     orNoop(metrics),
		logger:      logger,
	}
}

// --- Implementation ---

func (s *feeService) CalculateFees(ctx context.Context, in FeeInput) (FeeBreakdown, error) {
	if in.Amount.IsNegative() {
		return FeeBreakdown{}, ErrInvalidAmount
	}

	var txPct decimal.Decimal
	switch in.PaymentMethod {
	case PaymentMethodPoints:
		if !in.AcceptsPoints {
			return FeeBreakdown{}, fmt.Errorf("%w: listing does not accept points", ErrUnsupportedPaymentMethod)
		}
		txPct = s.config.PointsPct
	case PaymentMethodCard:
		txPct = s.config.CardPct
	default:
		return FeeBreakdown{}, fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, in.PaymentMethod)
	}

	platformFee := money.Percent(in.Amount, s.config.PlatformPct)
	transactionFee := money.Percent(in.Amount, txPct)

	exempt := s.exemptions.QualifiesForExemption(ctx, ExemptionRequest{
		BuyerID:         in.BuyerID,
		StateCode:       in.SellerState,
		IsCharitableUse: in.IsCharitableUse,
	})

	taxRate := decimal.Zero
	if !exempt && in.SellerState != nil && strings.TrimSpace(*in.SellerState) != "" {
		taxRate = s.stateRate(ctx, *in.SellerState)
	}
	salesTax := money.Percent(in.Amount, taxRate)

	breakdown := FeeBreakdown{
		PlatformFee:       platformFee,
		PlatformFeePct:    s.config.PlatformPct,
		TransactionFee:    transactionFee,
		TransactionFeePct: txPct,
		SalesTax:          salesTax,
		SalesTaxRate:      taxRate,
		TotalBuyerPays:    money.Round(in.Amount),
		SellerEarnings:    money.Round(in.Amount.Sub(platformFee).Sub(transactionFee).Sub(salesTax)),
		IsExempt:          exempt,
	}

	s.metrics.RecordFeeQuote(in.PaymentMethod, exempt)
	return breakdown, nil
}

// stateRate returns the state's base rate, or zero when the state has no rule.
func (s *feeService) stateRate(ctx context.Context, stateCode string) decimal.Decimal {
	rule, err := s.ruleRepo.FindByState(ctx, stateCode)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("state tax rule lookup failed", "state", stateCode, "error", err)
		}
		return decimal.Zero
	}
	return rule.BaseRate
}

func (s *feeService) Quote(ctx context.Context, req FeeQuoteRequest) (FeeQuoteResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return FeeQuoteResponse{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	in := FeeInput{
		Amount:          amount,
		PaymentMethod:   req.PaymentMethod,
		SellerState:     req.SellerState,
		AcceptsPoints:   req.AcceptsPoints,
		IsCharitableUse: true,
	}
	if req.IsCharitableUse != nil {
		in.IsCharitableUse = *req.IsCharitableUse
	}

	if req.BuyerID != "" {
		buyerID, parseErr := uuid.Parse(req.BuyerID)
		if parseErr != nil {
			return FeeQuoteResponse{}, fmt.Errorf("%w: buyer_id: %v", ErrInvalidInput, parseErr)
		}
		in.BuyerID = &buyerID
	}

	if req.ListingID != "" {
		listingID, parseErr := uuid.Parse(req.ListingID)
		if parseErr != nil {
			return FeeQuoteResponse{}, fmt.Errorf("%w: listing_id: %v", ErrInvalidInput, parseErr)
		}
		listing, findErr := s.listingRepo.FindByID(ctx, listingID)
		if findErr != nil {
			return FeeQuoteResponse{}, wrapLookup(findErr, "listing")
		}
		in.AcceptsPoints = listing.AcceptsPoints
	}

	b, err := s.CalculateFees(ctx, in)
	if err != nil {
		return FeeQuoteResponse{}, err
	}
	return toFeeQuoteResponse(b), nil
}

func toFeeQuoteResponse(b FeeBreakdown) FeeQuoteResponse {
	return FeeQuoteResponse{
		PlatformFee:       b.PlatformFee.StringFixed(2),
		PlatformFeePct:    b.PlatformFeePct.String(),
		TransactionFee:    b.TransactionFee.StringFixed(2),
		TransactionFeePct: b.TransactionFeePct.String(),
		SalesTax:          b.SalesTax.StringFixed(2),
		SalesTaxRate:      b.SalesTaxRate.String(),
		TotalBuyerPays:    b.TotalBuyerPays.StringFixed(2),
		SellerEarnings:    b.SellerEarnings.StringFixed(2),
		IsExempt:          b.IsExempt,
	}
}
