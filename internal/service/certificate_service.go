package service

import (
	"context"
	"fmt"
	"time"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type SubmitCertificateRequest struct {
	UserID        string `json:"user_id" binding:"required,uuid"`
	StateCode     string `json:"state_code" binding:"required,len=2,alpha"`
	CertificateNo string `json:"certificate_no" binding:"required"`
	ExpiryDate    string `json:"expiry_date"` // YYYY-MM-DD, empty = never expires
}

type ReviewCertificateRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// --- Interface ---

type CertificateService interface {
	Submit(ctx context.Context, req SubmitCertificateRequest, actorID *uuid.UUID) (*model.ExemptionCertificate, error)
	Review(ctx context.Context, id string, req ReviewCertificateRequest, reviewerID *uuid.UUID) (*model.ExemptionCertificate, error)
}

type certificateService struct {
	certRepo  repository.CertificateRepository
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	now       func() time.Time
}

func NewCertificateService(
	certRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	now func() time.Time,
) CertificateService {
	if now == nil {
		now = time.Now
	}
	return &certificateService{certRepo: certRepo, userRepo: userRepo, auditRepo: auditRepo, txManager: txManager, now: now}
}

// --- Implementation ---

// Submit records a certificate as pending review.
func (s *certificateService) Submit(ctx context.Context, req SubmitCertificateRequest, actorID *uuid.UUID) (*model.ExemptionCertificate, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id", ErrInvalidInput)
	}

	cert := &model.ExemptionCertificate{
		UserID:        userID,
		StateCode:     repository.NormalizeState(req.StateCode),
		CertificateNo: req.CertificateNo,
		Status:        model.CertificatePending,
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry_date must be YYYY-MM-DD", ErrInvalidInput)
		}
		// A certificate stays valid through its expiry day.
		end := expiry.Add(24*time.Hour - time.Nanosecond)
		cert.ExpiryDate = &end
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.userRepo.GetByID(txCtx, userID); err != nil {
			return wrapLookup(err, "user")
		}
		if err := s.certRepo.Create(txCtx, cert); err != nil {
			return fmt.Errorf("failed to create certificate: %w", err)
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionSubmitCertificate, cert.ID.String(), cert.CertificateNo, req)
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *certificateService) Review(ctx context.Context, id string, req ReviewCertificateRequest, reviewerID *uuid.UUID) (*model.ExemptionCertificate, error) {
	certID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid certificate id", ErrInvalidInput)
	}
	if req.Status != model.CertificateApproved && req.Status != model.CertificateRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	}

	var cert *model.ExemptionCertificate
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		cert, err = s.certRepo.FindByID(txCtx, certID)
		if err != nil {
			return wrapLookup(err, "certificate")
		}
		previous := cert.Status
		reviewedAt := s.now().UTC()
		cert.Status = req.Status
		cert.ReviewedBy = reviewerID
		cert.ReviewedAt = &reviewedAt
		if err := s.certRepo.Update(txCtx, cert); err != nil {
			return fmt.Errorf("failed to update certificate: %w", err)
		}
		return s.auditRepo.Record(txCtx, reviewerID, model.ActionReviewCertificate, cert.ID.String(), cert.CertificateNo, map[string]string{
			"from": previous,
			"to":   cert.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	return cert, nil
}
