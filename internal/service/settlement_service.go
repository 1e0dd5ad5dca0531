package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settlement results reported to metrics
const (
	SettlementSettled      = "settled"
	SettlementNoop         = "noop"
	SettlementInsufficient = "insufficient_balance"
	SettlementMissingLink  = "missing_link"
	SettlementFailed       = "failed"
)

// --- DTOs ---

type CreateBarterRequest struct {
	RequestingOrgID    string `json:"requesting_org_id" binding:"required,uuid"`
	RespondingOrgID    string `json:"responding_org_id" binding:"required,uuid"`
	RequestedListingID string `json:"requested_listing_id" binding:"required,uuid"`
	OfferedListingID   string `json:"offered_listing_id" binding:"required,uuid"`
}

type SettlementResult struct {
	TransactionID string                 `json:"transaction_id"`
	Status        string                 `json:"status"`
	PointsDelta   int64                  `json:"points_delta"`
	Settlement    *model.PointSettlement `json:"settlement,omitempty"`
}

// --- Interface ---

type SettlementService interface {
	CreateTransaction(ctx context.Context, req CreateBarterRequest, actorID *uuid.UUID) (*model.BarterTransaction, error)
	CanSettle(ctx context.Context, txID uuid.UUID) (bool, error)
	Settle(ctx context.Context, txID uuid.UUID, actorID *uuid.UUID) (*SettlementResult, error)
}

type settlementService struct {
	barterRepo  repository.BarterRepository
	listingRepo repository.ListingRepository
	orgRepo     repository.OrganizationRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	metrics     MetricsCollector
	now         func() time.Time
	logger      *slog.Logger
}

func NewSettlementService(
	barterRepo repository.BarterRepository,
	listingRepo repository.ListingRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	metrics MetricsCollector,
	now func() time.Time,
	logger *slog.Logger,
) SettlementService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &settlementService{
		barterRepo:  barterRepo,
		listingRepo: listingRepo,
		orgRepo:     orgRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		metrics:     orNoop(metrics),
		now:         now,
		logger:      logger,
	}
}

// ComputeDelta returns what the requesting party owes the responding party.
// A negative result means the responding party pays.
func ComputeDelta(requested, offered model.Listing) int64 {
	return requested.PointsValue - offered.PointsValue
}

// parties resolves who pays whom for a non-zero delta.
func parties(txn *model.BarterTransaction) (payer, payee *model.Organization, points int64) {
	if txn.PointsDelta > 0 {
		return txn.RequestingOrg, txn.RespondingOrg, txn.PointsDelta
	}
	return txn.RespondingOrg, txn.RequestingOrg, -txn.PointsDelta
}

func linkedAccount(org *model.Organization) (uuid.UUID, bool) {
	if org == nil || org.UserID == nil {
		return uuid.Nil, false
	}
	return *org.UserID, true
}

// --- Implementation ---

func (s *settlementService) CreateTransaction(ctx context.Context, req CreateBarterRequest, actorID *uuid.UUID) (*model.BarterTransaction, error) {
	ids, err := parseUUIDs(req.RequestingOrgID, req.RespondingOrgID, req.RequestedListingID, req.OfferedListingID)
	if err != nil {
		return nil, err
	}
	requestingOrgID, respondingOrgID, requestedID, offeredID := ids[0], ids[1], ids[2], ids[3]
	if requestingOrgID == respondingOrgID {
		return nil, fmt.Errorf("%w: an organization cannot barter with itself", ErrInvalidInput)
	}

	var txn *model.BarterTransaction
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, orgID := range []uuid.UUID{requestingOrgID, respondingOrgID} {
			if _, err := s.orgRepo.FindByID(txCtx, orgID); err != nil {
				return wrapLookup(err, "organization")
			}
		}
		requested, err := s.listingRepo.FindByID(txCtx, requestedID)
		if err != nil {
			return wrapLookup(err, "requested listing")
		}
		offered, err := s.listingRepo.FindByID(txCtx, offeredID)
		if err != nil {
			return wrapLookup(err, "offered listing")
		}

		txn = &model.BarterTransaction{
			RequestingOrgID:    requestingOrgID,
			RespondingOrgID:    respondingOrgID,
			RequestedListingID: requested.ID,
			OfferedListingID:   offered.ID,
			PointsDelta:        ComputeDelta(*requested, *offered),
			Status:             model.BarterPending,
		}
		if err := s.barterRepo.Create(txCtx, txn); err != nil {
			return fmt.Errorf("failed to create barter transaction: %w", err)
		}

		return s.auditRepo.Record(txCtx, actorID, model.ActionCreateBarter, txn.ID.String(), "", map[string]interface{}{
			"requesting_org_id": requestingOrgID,
			"responding_org_id": respondingOrgID,
			"points_delta":      txn.PointsDelta,
		})
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *settlementService) CanSettle(ctx context.Context, txID uuid.UUID) (bool, error) {
	txn, err := s.barterRepo.FindByID(ctx, txID)
	if err != nil {
		return false, wrapLookup(err, "barter transaction")
	}
	return s.canSettle(ctx, txn)
}

// canSettle is true for a zero delta, otherwise iff the payer has a linked
// account holding at least |delta| points.
func (s *settlementService) canSettle(ctx context.Context, txn *model.BarterTransaction) (bool, error) {
	if txn.PointsDelta == 0 {
		return true, nil
	}
	payer, _, points := parties(txn)
	accountID, ok := linkedAccount(payer)
	if !ok {
		return false, nil
	}
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch payer account: %w", err)
	}
	return user.PointsBalance >= points, nil
}

// Settle moves |delta| points from payer to payee. Checks run before any
// write; the debit, credit, settlement row and status change commit together.
func (s *settlementService) Settle(ctx context.Context, txID uuid.UUID, actorID *uuid.UUID) (*SettlementResult, error) {
	txn, err := s.barterRepo.FindByID(ctx, txID)
	if err != nil {
		return nil, wrapLookup(err, "barter transaction")
	}
	if txn.Status == model.BarterSettled {
		return nil, ErrAlreadySettled
	}

	if txn.PointsDelta != 0 {
		if err := s.precheck(ctx, txn); err != nil {
			s.recordFailure(err)
			return nil, err
		}
	}

	var settlement *model.PointSettlement
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.barterRepo.FindByIDForUpdate(txCtx, txID)
		if err != nil {
			return wrapLookup(err, "barter transaction")
		}
		if locked.Status == model.BarterSettled {
			return ErrAlreadySettled
		}

		now := s.now().UTC()
		if locked.PointsDelta != 0 {
			settlement, err = s.transfer(txCtx, locked, now)
			if err != nil {
				return err
			}
		}

		if err := s.barterRepo.MarkSettled(txCtx, locked.ID, now); err != nil {
			return fmt.Errorf("failed to mark transaction settled: %w", err)
		}
		details := map[string]interface{}{"points_delta": locked.PointsDelta}
		if settlement != nil {
			details["from_user_id"] = settlement.FromUserID
			details["to_user_id"] = settlement.ToUserID
			details["points"] = settlement.Points
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionSettleBarter, locked.ID.String(), "", details)
	})
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	result := &SettlementResult{
		TransactionID: txn.ID.String(),
		Status:        model.BarterSettled,
		PointsDelta:   txn.PointsDelta,
		Settlement:    settlement,
	}
	if settlement == nil {
		s.metrics.RecordSettlement(SettlementNoop, 0)
	} else {
		s.metrics.RecordSettlement(SettlementSettled, settlement.Points)
		s.logger.Info("barter settled",
			"transaction_id", txn.ID,
			"from_user_id", settlement.FromUserID,
			"to_user_id", settlement.ToUserID,
			"points", settlement.Points)
	}
	return result, nil
}

// precheck rejects the settlement before the transaction opens. A payer with
// no linked account has no balance, so it reports both failures.
func (s *settlementService) precheck(ctx context.Context, txn *model.BarterTransaction) error {
	ok, err := s.canSettle(ctx, txn)
	if err != nil {
		return err
	}
	payer, payee, _ := parties(txn)
	if !ok {
		if _, linked := linkedAccount(payer); !linked {
			return fmt.Errorf("%w: %w", ErrInsufficientBalance, ErrMissingLinkedAccount)
		}
		return ErrInsufficientBalance
	}
	if _, linked := linkedAccount(payee); !linked {
		return ErrMissingLinkedAccount
	}
	return nil
}

// transfer runs inside the transaction. Both accounts are locked in id order
// and the balance is checked again against the locked row.
func (s *settlementService) transfer(ctx context.Context, txn *model.BarterTransaction, now time.Time) (*model.PointSettlement, error) {
	payer, payee, points := parties(txn)
	fromID, ok := linkedAccount(payer)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientBalance, ErrMissingLinkedAccount)
	}
	toID, ok := linkedAccount(payee)
	if !ok {
		return nil, ErrMissingLinkedAccount
	}

	accounts, err := s.userRepo.LockForUpdate(ctx, fromID, toID)
	if err != nil {
		return nil, wrapLookup(err, "points account")
	}
	if accounts[fromID].PointsBalance < points {
		return nil, ErrInsufficientBalance
	}

	debited, err := s.userRepo.DebitPoints(ctx, fromID, points)
	if err != nil {
		return nil, fmt.Errorf("failed to debit points: %w", err)
	}
	if !debited {
		return nil, ErrInsufficientBalance
	}
	if err := s.userRepo.CreditPoints(ctx, toID, points); err != nil {
		return nil, fmt.Errorf("failed to credit points: %w", err)
	}

	settlement := &model.PointSettlement{
		TransactionID: txn.ID,
		FromUserID:    fromID,
		ToUserID:      toID,
		Points:        points,
		CreatedAt:     now,
	}
	if err := s.barterRepo.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}
	return settlement, nil
}

func (s *settlementService) recordFailure(err error) {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		s.metrics.RecordSettlement(SettlementInsufficient, 0)
	case errors.Is(err, ErrMissingLinkedAccount):
		s.metrics.RecordSettlement(SettlementMissingLink, 0)
	case errors.Is(err, ErrAlreadySettled):
	default:
		s.metrics.RecordSettlement(SettlementFailed, 0)
		s.logger.Error("barter settlement failed", "error", err)
	}
}

func parseUUIDs(raw ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(raw))
	for i, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid id", ErrInvalidInput, r)
		}
		ids[i] = id
	}
	return ids, nil
}
