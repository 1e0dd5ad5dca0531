package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonationCompleted is the only donation status that earns points.
const DonationCompleted = "completed"

// Badge tier thresholds on 30-day-equivalent points, highest first.
var badgeThresholds = []struct {
	min  float64
	tier int
}{
	{5001, 5},
	{2501, 4},
	{1001, 3},
	{301, 2},
}

// ImpactConfig holds the point weights.
type ImpactConfig struct {
	VolunteerPerHour     float64
	CriticalBonusPerHour float64
	DonationPerUnit      decimal.Decimal
	FollowPoints         float64
	ConsistencyBonus     float64
	ConsistencyMonths    int
	CriticalKeywords     []string
}

func DefaultImpactConfig(keywords []string) ImpactConfig {
	return ImpactConfig{
		VolunteerPerHour:     50,
		CriticalBonusPerHour: 15,
		DonationPerUnit:      decimal.RequireFromString("0.55"),
		FollowPoints:         1,
		ConsistencyBonus:     250,
		ConsistencyMonths:    3,
		CriticalKeywords:     keywords,
	}
}

// --- Activities ---

type VolunteerActivity struct {
	UserID      uuid.UUID `json:"user_id" binding:"required"`
	TimesheetID string    `json:"timesheet_id" binding:"required"`
	Hours       float64   `json:"hours" binding:"required,gt=0"`
	Critical    bool      `json:"critical"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

type DonationActivity struct {
	UserID     uuid.UUID       `json:"user_id" binding:"required"`
	DonationID string          `json:"donation_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status" binding:"required"`
	Date       time.Time       `json:"date" binding:"required"`
}

type FollowActivity struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	FollowID string    `json:"follow_id" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
}

// AwardResult reports what an award call wrote. Duplicate is set when the
// source event already had its points.
type AwardResult struct {
	Point       *model.ImpactPoint `json:"point,omitempty"`
	Bonus       *model.ImpactPoint `json:"bonus,omitempty"`
	Duplicate   bool               `json:"duplicate"`
	Skipped     bool               `json:"skipped"`
	BadgeTier   int                `json:"badge_tier"`
	TierChanged bool               `json:"tier_changed"`
}

// --- Interface ---

type ImpactService interface {
	AwardVolunteerPoints(ctx context.Context, a VolunteerActivity) (*AwardResult, error)
	AwardDonationPoints(ctx context.Context, a DonationActivity) (*AwardResult, error)
	AwardFollowPoints(ctx context.Context, a FollowActivity) (*AwardResult, error)
	RemoveSourcePoints(ctx context.Context, sourceType, sourceID string, actorID *uuid.UUID) (int64, error)
	CalculateImpactScore(ctx context.Context, userID uuid.UUID, period string, now time.Time) (model.ScoreSummary, error)
	Leaderboard(ctx context.Context, period string, now time.Time, limit int) ([]model.LeaderboardEntry, error)
}

type impactService struct {
	config     ImpactConfig
	impactRepo repository.ImpactRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	metrics    MetricsCollector
	now        func() time.Time
	logger     *slog.Logger
}

func NewImpactService(
	config ImpactConfig,
	impactRepo repository.ImpactRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	metrics MetricsCollector,
	now func() time.Time,
	logger *slog.Logger,
) ImpactService {
	if config.ConsistencyMonths <= 0 {
		config.ConsistencyMonths = 3
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &impactService{
		config:     config,
		impactRepo: impactRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		metrics:    orNoop(metrics),
		now:        now,
		logger:     logger,
	}
}

// --- Scoring rules ---

// VolunteerPoints is hours at the base rate plus the critical bonus rate.
func (c ImpactConfig) VolunteerPoints(hours float64, critical bool) float64 {
	rate := c.VolunteerPerHour
	if critical {
		rate += c.CriticalBonusPerHour
	}
	return hours * rate
}

// IsCritical reports whether the activity is flagged or mentions a critical
// keyword in its title or description, ignoring case.
func (c ImpactConfig) IsCritical(a VolunteerActivity) bool {
	if a.Critical {
		return true
	}
	text := strings.ToLower(a.Title + "\n" + a.Description)
	for _, kw := range c.CriticalKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// WindowDays maps a period name to its length in days.
func WindowDays(period string) (int, bool) {
	switch period {
	case model.PeriodMonthly:
		return 30, true
	case model.PeriodQuarterly:
		return 90, true
	case model.PeriodAnnual:
		return 365, true
	}
	return 0, false
}

// NormalizePoints scales a window total to a 30-day equivalent.
func NormalizePoints(total float64, days int) float64 {
	if days == 30 || days <= 0 {
		return total
	}
	return total / float64(days) * 30
}

// BadgeTier returns 1-5 for 30-day-equivalent points.
func BadgeTier(normalized float64) int {
	for _, t := range badgeThresholds {
		if normalized >= t.min {
			return t.tier
		}
	}
	return 1
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func consistencySourceID(month time.Time) string {
	return "consistency:" + month.Format("2006-01")
}

// --- Implementation ---

func (s *impactService) AwardVolunteerPoints(ctx context.Context, a VolunteerActivity) (*AwardResult, error) {
	if a.Hours <= 0 {
		return nil, fmt.Errorf("%w: hours must be positive", ErrInvalidInput)
	}
	points := s.config.VolunteerPoints(a.Hours, s.config.IsCritical(a))
	point := &model.ImpactPoint{
		UserID:       a.UserID,
		SourceType:   model.SourceVolunteer,
		SourceID:     a.TimesheetID,
		Points:       points,
		ActivityDate: a.Date.UTC(),
		Description:  truncate(a.Title, 255),
	}
	return s.award(ctx, point, true)
}

func (s *impactService) AwardDonationPoints(ctx context.Context, a DonationActivity) (*AwardResult, error) {
	if a.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if !strings.EqualFold(a.Status, DonationCompleted) {
		return &AwardResult{Skipped: true}, nil
	}
	point := &model.ImpactPoint{
		UserID:       a.UserID,
		SourceType:   model.SourceDonation,
		SourceID:     a.DonationID,
		Points:       a.Amount.Mul(s.config.DonationPerUnit).Round(2).InexactFloat64(),
		ActivityDate: a.Date.UTC(),
		Description:  "donation of " + a.Amount.StringFixed(2),
	}
	return s.award(ctx, point, false)
}

func (s *impactService) AwardFollowPoints(ctx context.Context, a FollowActivity) (*AwardResult, error) {
	point := &model.ImpactPoint{
		UserID:       a.UserID,
		SourceType:   model.SourceFollow,
		SourceID:     a.FollowID,
		Points:       s.config.FollowPoints,
		ActivityDate: a.Date.UTC(),
	}
	return s.award(ctx, point, false)
}

// award writes point unless its source event was already recorded, then
// checks the consistency bonus for volunteer work. The tier is the user's
// monthly tier before and after the write.
func (s *impactService) award(ctx context.Context, point *model.ImpactPoint, checkBonus bool) (*AwardResult, error) {
	if point.SourceID == "" {
		return nil, fmt.Errorf("%w: source id is required", ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByID(ctx, point.UserID); err != nil {
		return nil, wrapLookup(err, "user")
	}

	now := s.now()
	result := &AwardResult{}
	before, err := s.monthlyTier(ctx, point.UserID, now)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.impactRepo.CreateOnce(txCtx, point)
		if err != nil {
			return fmt.Errorf("failed to record impact points: %w", err)
		}
		if !created {
			result.Duplicate = true
			return nil
		}
		result.Point = point

		if checkBonus {
			bonus, err := s.consistencyBonus(txCtx, point.UserID, point.ActivityDate)
			if err != nil {
				return err
			}
			result.Bonus = bonus
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after, err := s.monthlyTier(ctx, point.UserID, now)
	if err != nil {
		return nil, err
	}
	result.BadgeTier = after
	result.TierChanged = after != before

	if result.Point != nil {
		s.metrics.RecordImpactAward(point.SourceType, point.Points)
	}
	if result.Bonus != nil {
		s.metrics.RecordImpactAward(model.SourceBonus, result.Bonus.Points)
		s.logger.Info("consistency bonus awarded", "user_id", point.UserID, "source_id", result.Bonus.SourceID)
	}
	return result, nil
}

// consistencyBonus awards the monthly bonus for the activity's month when the
// user volunteered in each of the preceding months and has no bonus yet.
func (s *impactService) consistencyBonus(ctx context.Context, userID uuid.UUID, activityDate time.Time) (*model.ImpactPoint, error) {
	month := monthStart(activityDate)
	sourceID := consistencySourceID(month)

	exists, err := s.impactRepo.Exists(ctx, userID, model.SourceBonus, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check consistency bonus: %w", err)
	}
	if exists {
		return nil, nil
	}

	for i := 1; i <= s.config.ConsistencyMonths; i++ {
		from := month.AddDate(0, -i, 0)
		to := month.AddDate(0, -i+1, 0)
		n, err := s.impactRepo.CountBetween(ctx, userID, model.SourceVolunteer, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to count volunteer activity: %w", err)
		}
		if n == 0 {
			return nil, nil
		}
	}

	bonus := &model.ImpactPoint{
		UserID:       userID,
		SourceType:   model.SourceBonus,
		SourceID:     sourceID,
		Points:       s.config.ConsistencyBonus,
		ActivityDate: activityDate,
		Description:  "volunteer consistency bonus " + month.Format("2006-01"),
	}
	created, err := s.impactRepo.CreateOnce(ctx, bonus)
	if err != nil {
		return nil, fmt.Errorf("failed to record consistency bonus: %w", err)
	}
	if !created {
		return nil, nil
	}
	return bonus, nil
}

func (s *impactService) RemoveSourcePoints(ctx context.Context, sourceType, sourceID string, actorID *uuid.UUID) (int64, error) {
	switch sourceType {
	case model.SourceVolunteer, model.SourceDonation, model.SourceFollow, model.SourceBonus:
	default:
		return 0, fmt.Errorf("%w: unknown source type %q", ErrInvalidInput, sourceType)
	}
	if sourceID == "" {
		return 0, fmt.Errorf("%w: source id is required", ErrInvalidInput)
	}

	var removed int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.impactRepo.DeleteBySource(txCtx, sourceType, sourceID)
		if err != nil {
			return fmt.Errorf("failed to remove impact points: %w", err)
		}
		removed = n
		if n == 0 {
			return nil
		}
		return s.auditRepo.Record(txCtx, actorID, model.ActionRemoveImpactSources, sourceID, sourceType, map[string]interface{}{
			"source_type": sourceType,
			"source_id":   sourceID,
			"rows":        n,
		})
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *impactService) CalculateImpactScore(ctx context.Context, userID uuid.UUID, period string, now time.Time) (model.ScoreSummary, error) {
	days, ok := WindowDays(period)
	if !ok {
		return model.ScoreSummary{}, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}
	now = now.UTC()
	from := now.AddDate(0, 0, -days)

	totals, err := s.impactRepo.SumBySource(ctx, userID, from, now)
	if err != nil {
		return model.ScoreSummary{}, err
	}

	summary := model.ScoreSummary{
		UserID:         userID.String(),
		Period:         period,
		WindowDays:     days,
		WindowStart:    from,
		WindowEnd:      now,
		PointsBySource: make(map[string]float64, len(totals)),
	}
	for _, t := range totals {
		summary.PointsBySource[t.SourceType] = t.Total
		summary.TotalPoints += t.Total
	}
	summary.ImpactScore = summary.TotalPoints / float64(days)
	summary.NormalizedPoints = NormalizePoints(summary.TotalPoints, days)
	summary.BadgeTier = BadgeTier(summary.NormalizedPoints)
	return summary, nil
}

func (s *impactService) monthlyTier(ctx context.Context, userID uuid.UUID, now time.Time) (int, error) {
	summary, err := s.CalculateImpactScore(ctx, userID, model.PeriodMonthly, now)
	if err != nil {
		return 0, err
	}
	return summary.BadgeTier, nil
}

func (s *impactService) Leaderboard(ctx context.Context, period string, now time.Time, limit int) ([]model.LeaderboardEntry, error) {
	days, ok := WindowDays(period)
	if !ok {
		return nil, fmt.Errorf("%w: unknown period %q", ErrInvalidInput, period)
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	now = now.UTC()

	totals, err := s.impactRepo.TopUsers(ctx, now.AddDate(0, 0, -days), now, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, 0, len(totals))
	for _, t := range totals {
		entries = append(entries, model.LeaderboardEntry{
			UserID:      t.UserID.String(),
			Name:        t.Name,
			TotalPoints: t.Total,
			BadgeTier:   BadgeTier(NormalizePoints(t.Total, days)),
		})
	}
	return entries, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
