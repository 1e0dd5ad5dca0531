package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
)

// DefaultComplianceThresholdMonths is used when no positive threshold is given.
const DefaultComplianceThresholdMonths = 36

// EvaluateCompliance classifies a raw tax period against now. Malformed input
// is reported through Status, never as an error.
func EvaluateCompliance(taxPeriod *string, identifier string, thresholdMonths int, now time.Time) model.ComplianceRecord {
	if thresholdMonths <= 0 {
		thresholdMonths = DefaultComplianceThresholdMonths
	}
	now = now.UTC()
	rec := model.ComplianceRecord{
		Identifier:      identifier,
		TaxPeriod:       taxPeriod,
		CheckedAt:       now,
		ThresholdMonths: thresholdMonths,
	}

	if taxPeriod == nil || strings.TrimSpace(*taxPeriod) == "" {
		rec.Status = model.ComplianceMissing
		rec.ShouldLock = true
		return rec
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, *taxPeriod)
	if len(digits) != 6 {
		rec.Status = model.ComplianceInvalid
		rec.ShouldLock = true
		return rec
	}
	rec.NormalizedPeriod = digits

	year, _ := strconv.Atoi(digits[:4])
	month, _ := strconv.Atoi(digits[4:])
	if year < 1 || month < 1 || month > 12 {
		rec.Status = model.ComplianceInvalid
		rec.ShouldLock = true
		return rec
	}

	periodEnd := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	rec.PeriodEndDate = &periodEnd

	months := monthsBetween(periodEnd, now)
	rec.MonthsSince = &months
	rec.IsExpired = months >= thresholdMonths
	rec.ShouldLock = rec.IsExpired
	if rec.IsExpired {
		rec.Status = model.ComplianceExpired
	} else {
		rec.Status = model.ComplianceCurrent
	}
	return rec
}

// monthsBetween counts calendar-month boundaries from ref to now, floored at zero.
func monthsBetween(ref, now time.Time) int {
	months := (now.Year()-ref.Year())*12 + int(now.Month()) - int(ref.Month())
	if months < 0 {
		return 0
	}
	return months
}

// --- DTOs ---

type ComplianceEvaluateRequest struct {
	TaxPeriod       *string `json:"tax_period"`
	Identifier      string  `json:"identifier"`
	ThresholdMonths int     `json:"threshold_months"` // 0 uses the configured default
}

// --- Interface ---

type ComplianceService interface {
	Evaluate(req ComplianceEvaluateRequest) model.ComplianceRecord
	CheckOrganization(ctx context.Context, orgID uuid.UUID, actorID *uuid.UUID) (model.ComplianceRecord, error)
}

type complianceService struct {
	orgRepo         repository.OrganizationRepository
	auditRepo       repository.AuditRepository
	txManager       repository.TransactionManager
	thresholdMonths int
	metrics         MetricsCollector
	now             func() time.Time
	logger          *slog.Logger
}

func NewComplianceService(
	orgRepo repository.OrganizationRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	thresholdMonths int,
	metrics MetricsCollector,
	now func() time.Time,
	logger *slog.Logger,
) ComplianceService {
	if thresholdMonths <= 0 {
		thresholdMonths = DefaultComplianceThresholdMonths
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &complianceService{
		orgRepo:         orgRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		thresholdMonths: thresholdMonths,
		metrics:         orNoop(metrics),
		now:             now,
		logger:          logger,
	}
}

// --- Implementation ---

func (s *complianceService) Evaluate(req ComplianceEvaluateRequest) model.ComplianceRecord {
	threshold := req.ThresholdMonths
	if threshold <= 0 {
		threshold = s.thresholdMonths
	}
	rec := EvaluateCompliance(req.TaxPeriod, req.Identifier, threshold, s.now())
	s.metrics.RecordCompliance(rec.Status)
	return rec
}

// CheckOrganization evaluates the organization's stored tax period and saves
// the resulting status and lock on the organization.
func (s *complianceService) CheckOrganization(ctx context.Context, orgID uuid.UUID, actorID *uuid.UUID) (model.ComplianceRecord, error) {
	now := s.now()

	var rec model.ComplianceRecord
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		org, err := s.orgRepo.FindByID(txCtx, orgID)
		if err != nil {
			return wrapLookup(err, "organization")
		}

		rec = EvaluateCompliance(org.TaxPeriod, org.EIN, s.thresholdMonths, now)
		if err := s.orgRepo.UpdateCompliance(txCtx, org.ID, rec.Status, rec.CheckedAt, rec.ShouldLock); err != nil {
			return fmt.Errorf("failed to update organization compliance: %w", err)
		}

		return s.auditRepo.Record(txCtx, actorID, model.ActionComplianceCheck, org.ID.String(), org.Name, map[string]interface{}{
			"status":      rec.Status,
			"should_lock": rec.ShouldLock,
			"tax_period":  rec.TaxPeriod,
		})
	})
	if err != nil {
		return model.ComplianceRecord{}, err
	}

	s.metrics.RecordCompliance(rec.Status)
	if rec.ShouldLock {
		s.logger.Warn("organization compliance locked", "organization_id", orgID, "status", rec.Status)
	}
	return rec, nil
}
