package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"impactcore/internal/database/dbtest"
	"impactcore/internal/model"
	"impactcore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv wires every repository against one in-memory database.
type testEnv struct {
	db        *gorm.DB
	users     repository.UserRepository
	orgs      repository.OrganizationRepository
	rules     repository.StateTaxRuleRepository
	certs     repository.CertificateRepository
	listings  repository.ListingRepository
	barters   repository.BarterRepository
	impact    repository.ImpactRepository
	audit     repository.AuditRepository
	txManager repository.TransactionManager
	metrics   *recordingMetrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvOn(dbtest.NewTestDB(t))
}

func newTestEnvOn(db *gorm.DB) *testEnv {
	return &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		orgs:      repository.NewOrganizationRepository(db),
		rules:     repository.NewStateTaxRuleRepository(db),
		certs:     repository.NewCertificateRepository(db),
		listings:  repository.NewListingRepository(db),
		barters:   repository.NewBarterRepository(db),
		impact:    repository.NewImpactRepository(db),
		audit:     repository.NewAuditRepository(db),
		txManager: repository.NewTransactionManager(db),
		metrics:   &recordingMetrics{},
	}
}

func (e *testEnv) createUser(t *testing.T, balance int64, orgID *uuid.UUID) *model.User {
	t.Helper()
	id := uuid.New()
	u := &model.User{
		ID:             id,
		Name:           "user " + id.String()[:8],
		Email:          id.String() + "@example.org",
		Password:       "x",
		Role:           model.RoleMember,
		OrganizationID: orgID,
		PointsBalance:  balance,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) createOrg(t *testing.T, nonprofit bool, account *uuid.UUID) *model.Organization {
	t.Helper()
	o := &model.Organization{Name: "org", EIN: "12-3456789", IsNonprofit: nonprofit, UserID: account}
	require.NoError(t, e.orgs.Create(context.Background(), o))
	return o
}

// createNonprofitBuyer returns a user acting for a nonprofit organization.
func (e *testEnv) createNonprofitBuyer(t *testing.T) *model.User {
	t.Helper()
	org := e.createOrg(t, true, nil)
	return e.createUser(t, 0, &org.ID)
}

func (e *testEnv) createRule(t *testing.T, state, rate, status string, requiresCert bool) {
	t.Helper()
	require.NoError(t, e.rules.Create(context.Background(), &model.StateTaxRule{
		StateCode:             state,
		BaseRate:              decimal.RequireFromString(rate),
		Status:                status,
		GoodsVsServicesPolicy: model.PolicyGoodsAndServ,
		RequiresCertificate:   requiresCert,
	}))
}

func (e *testEnv) createCert(t *testing.T, userID uuid.UUID, state, status string, expiry *time.Time) {
	t.Helper()
	require.NoError(t, e.certs.Create(context.Background(), &model.ExemptionCertificate{
		UserID:     userID,
		StateCode:  state,
		Status:     status,
		ExpiryDate: expiry,
	}))
}

func (e *testEnv) createListing(t *testing.T, orgID uuid.UUID, points int64, acceptsPoints bool) *model.Listing {
	t.Helper()
	l := &model.Listing{
		OrganizationID: orgID,
		Title:          "listing",
		Price:          decimal.NewFromInt(10),
		PointsValue:    points,
		AcceptsPoints:  acceptsPoints,
	}
	require.NoError(t, e.listings.Create(context.Background(), l))
	return l
}

func (e *testEnv) balance(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	u, err := e.users.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u.PointsBalance
}

func (e *testEnv) exemptionService() ExemptionEvaluator {
	return NewExemptionService(e.users, e.orgs, e.rules, e.certs, fixedClock(testNow), discardLogger())
}

type recordingMetrics struct {
	mu          sync.Mutex
	feeQuotes   []string
	settlements []string
	compliance  []string
	awards      map[string]float64
}

func (m *recordingMetrics) RecordFeeQuote(paymentMethod string, exempt bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feeQuotes = append(m.feeQuotes, paymentMethod)
}

func (m *recordingMetrics) RecordSettlement(result string, points int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements = append(m.settlements, result)
}

func (m *recordingMetrics) RecordCompliance(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compliance = append(m.compliance, status)
}

func (m *recordingMetrics) RecordImpactAward(sourceType string, points float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.awards == nil {
		m.awards = make(map[string]float64)
	}
	m.awards[sourceType] += points
}

func strPtr(s string) *string { return &s }
