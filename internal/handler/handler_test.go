package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"impactcore/internal/database/dbtest"
	"impactcore/internal/middleware"
	"impactcore/internal/model"
	"impactcore/internal/repository"
	"impactcore/internal/service"
	"impactcore/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type apiEnv struct {
	router   *gin.Engine
	auth     *middleware.Auth
	events   *recordingPublisher
	users    repository.UserRepository
	orgs     repository.OrganizationRepository
	listings repository.ListingRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.NewTestDB(t)
	clock := func() time.Time { return testNow }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := repository.NewUserRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	rules := repository.NewStateTaxRuleRepository(db)
	certs := repository.NewCertificateRepository(db)
	listings := repository.NewListingRepository(db)
	barters := repository.NewBarterRepository(db)
	impact := repository.NewImpactRepository(db)
	audit := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	auth := middleware.NewAuth("handler-test-secret", time.Hour, false)
	events := &recordingPublisher{}

	exemptions := service.NewExemptionService(users, orgs, rules, certs, clock, logger)
	feeService := service.NewFeeService(service.DefaultFeeConfig(), rules, listings, exemptions, nil, logger)
	settlement := service.NewSettlementService(barters, listings, orgs, users, audit, txManager, nil, clock, logger)
	compliance := service.NewComplianceService(orgs, audit, txManager, service.DefaultComplianceThresholdMonths, nil, clock, logger)
	impactService := service.NewImpactService(service.DefaultImpactConfig(nil), impact, users, audit, txManager, nil, clock, logger)

	impactHandler := NewImpactHandler(impactService, events, auth)
	impactHandler.now = clock

	router := gin.New()
	api := router.Group("")
	NewUserHandler(service.NewUserService(users, orgs, auth), auth).RegisterRoutes(api)
	NewTaxHandler(service.NewTaxService(rules, audit, txManager), service.NewCertificateService(certs, users, audit, txManager, clock), auth).RegisterRoutes(api)
	NewFeeHandler(feeService, exemptions, auth).RegisterRoutes(api)
	NewOrganizationHandler(service.NewDirectoryService(orgs, listings, users), compliance, auth).RegisterRoutes(api)
	NewBarterHandler(settlement, events, auth).RegisterRoutes(api)
	impactHandler.RegisterRoutes(api)
	NewAuditHandler(service.NewAuditService(audit), auth).RegisterRoutes(api)

	return &apiEnv{router: router, auth: auth, events: events, users: users, orgs: orgs, listings: listings}
}

func (e *apiEnv) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := e.auth.Issue(uuid.New(), role)
	require.NoError(t, err)
	return token
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Equal(t, "success", envelope.Status, envelope.Error)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func (e *apiEnv) createOrgWithAccount(t *testing.T, balance int64) (*model.Organization, *model.User) {
	t.Helper()
	user := &model.User{Name: "acct", Email: uuid.NewString() + "@example.org", Password: "x", Role: model.RoleMember, PointsBalance: balance}
	require.NoError(t, e.users.Create(context.Background(), user))
	org := &model.Organization{Name: "org", IsNonprofit: true, UserID: &user.ID}
	require.NoError(t, e.orgs.Create(context.Background(), org))
	return org, user
}

func (e *apiEnv) createListing(t *testing.T, orgID uuid.UUID, points int64) *model.Listing {
	t.Helper()
	l := &model.Listing{OrganizationID: orgID, Title: "listing", Price: decimal.NewFromInt(10), PointsValue: points, AcceptsPoints: true}
	require.NoError(t, e.listings.Create(context.Background(), l))
	return l
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{fmt.Errorf("%w: bad", service.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("tax rule %w", service.ErrNotFound), http.StatusNotFound},
		{service.ErrAlreadySettled, http.StatusConflict},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: %w", service.ErrInsufficientBalance, service.ErrMissingLinkedAccount), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}

func TestAuth_LoginAndRoles(t *testing.T) {
	env := newAPIEnv(t)
	admin := env.token(t, model.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/users", admin, service.CreateUserRequest{
		Name: "Dana", Email: "Dana@Example.org", Password: "secret1", Role: model.RoleStaff,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/auth/login", "", service.LoginUserRequest{Email: "dana@example.org", Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok service.TokenResponse
	decodeData(t, w, &tok)
	assert.NotEmpty(t, tok.Token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=")

	w = env.do(t, http.MethodGet, "/api/me", tok.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me service.UserResponse
	decodeData(t, w, &me)
	assert.Equal(t, "dana@example.org", me.Email)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", service.LoginUserRequest{Email: "dana@example.org", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/tax-rules", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/tax-rules", tok.Token, service.StateTaxRuleRequest{}).Code)
}

func TestFeeCalculate_AppliesStateTax(t *testing.T) {
	env := newAPIEnv(t)
	admin := env.token(t, model.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/tax-rules", admin, service.StateTaxRuleRequest{
		StateCode: "CA", StateName: "California", BaseRate: "7.25", Status: model.TaxStatusNonExempt,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	state := "CA"
	w = env.do(t, http.MethodPost, "/api/fees/calculate", env.token(t, model.RoleMember), service.FeeQuoteRequest{
		Amount: "80", PaymentMethod: service.PaymentMethodCard, SellerState: &state,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var quote service.FeeQuoteResponse
	decodeData(t, w, &quote)
	assert.Equal(t, "4.40", quote.PlatformFee)
	assert.Equal(t, "2.40", quote.TransactionFee)
	assert.Equal(t, "5.80", quote.SalesTax)
	assert.Equal(t, "80.00", quote.TotalBuyerPays)
	assert.Equal(t, "67.40", quote.SellerEarnings)
	assert.False(t, quote.IsExempt)

	w = env.do(t, http.MethodPost, "/api/fees/calculate", admin, service.FeeQuoteRequest{Amount: "-1", PaymentMethod: service.PaymentMethodCard})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExemptionCheck_RejectsBadBuyer(t *testing.T) {
	env := newAPIEnv(t)
	member := env.token(t, model.RoleMember)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/exemptions/check?buyer_id=nope", member, nil).Code)

	w := env.do(t, http.MethodGet, "/api/exemptions/check?state=ZZ", member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var decision service.ExemptionDecision
	decodeData(t, w, &decision)
	assert.False(t, decision.Exempt)
}

func TestBarter_SettleFlow(t *testing.T) {
	env := newAPIEnv(t)
	member := env.token(t, model.RoleMember)

	requesting, payer := env.createOrgWithAccount(t, 500)
	responding, payee := env.createOrgWithAccount(t, 0)
	requested := env.createListing(t, responding.ID, 300)
	offered := env.createListing(t, requesting.ID, 100)

	w := env.do(t, http.MethodPost, "/api/barter/transactions", member, service.CreateBarterRequest{
		RequestingOrgID:    requesting.ID.String(),
		RespondingOrgID:    responding.ID.String(),
		RequestedListingID: requested.ID.String(),
		OfferedListingID:   offered.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var txn model.BarterTransaction
	decodeData(t, w, &txn)
	assert.Equal(t, int64(200), txn.PointsDelta)

	w = env.do(t, http.MethodGet, "/api/barter/transactions/"+txn.ID.String()+"/can-settle", member, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var can struct {
		CanSettle bool `json:"can_settle"`
	}
	decodeData(t, w, &can)
	assert.True(t, can.CanSettle)

	w = env.do(t, http.MethodPost, "/api/barter/transactions/"+txn.ID.String()+"/settle", member, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result service.SettlementResult
	decodeData(t, w, &result)
	assert.Equal(t, service.SettlementSettled, result.Status)
	assert.Equal(t, []string{websocket.EventBarterSettled}, env.events.types())

	p, err := env.users.GetByID(context.Background(), payer.ID)
	require.NoError(t, err)
	q, err := env.users.GetByID(context.Background(), payee.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), p.PointsBalance)
	assert.Equal(t, int64(200), q.PointsBalance)

	w = env.do(t, http.MethodPost, "/api/barter/transactions/"+txn.ID.String()+"/settle", member, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/barter/transactions/not-a-uuid/settle", member, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrganization_NotFoundAndCompliance(t *testing.T) {
	env := newAPIEnv(t)
	staff := env.token(t, model.RoleStaff)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/organizations/"+uuid.NewString(), staff, nil).Code)

	period := "202301"
	w := env.do(t, http.MethodPost, "/api/organizations", staff, service.CreateOrganizationRequest{Name: "Food Co-op", IsNonprofit: true, TaxPeriod: &period})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var org model.Organization
	decodeData(t, w, &org)

	w = env.do(t, http.MethodPost, "/api/organizations/"+org.ID.String()+"/compliance-check", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var record model.ComplianceRecord
	decodeData(t, w, &record)
	assert.Equal(t, model.ComplianceCurrent, record.Status)
	assert.False(t, record.ShouldLock)

	missing := env.do(t, http.MethodPost, "/api/compliance/evaluate", staff, service.ComplianceEvaluateRequest{Identifier: "x"})
	require.Equal(t, http.StatusOK, missing.Code)
	var missingRecord model.ComplianceRecord
	decodeData(t, missing, &missingRecord)
	assert.Equal(t, model.ComplianceMissing, missingRecord.Status)
	assert.True(t, missingRecord.ShouldLock)
}

func TestImpact_AwardPublishesAndScores(t *testing.T) {
	env := newAPIEnv(t)
	staff := env.token(t, model.RoleStaff)

	user := &model.User{Name: "vol", Email: "vol@example.org", Password: "x", Role: model.RoleMember}
	require.NoError(t, env.users.Create(context.Background(), user))

	activity := service.VolunteerActivity{
		UserID:      user.ID,
		TimesheetID: "ts-1",
		Hours:       2,
		Title:       "Sorting books",
		Date:        testNow.AddDate(0, 0, -2),
	}
	w := env.do(t, http.MethodPost, "/api/impact/volunteer", staff, activity)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var award service.AwardResult
	decodeData(t, w, &award)
	require.NotNil(t, award.Point)
	assert.False(t, award.Duplicate)
	assert.Contains(t, env.events.types(), websocket.EventImpactAwarded)

	w = env.do(t, http.MethodPost, "/api/impact/volunteer", staff, activity)
	require.Equal(t, http.StatusOK, w.Code)
	var repeat service.AwardResult
	decodeData(t, w, &repeat)
	assert.True(t, repeat.Duplicate)
	assert.Nil(t, repeat.Point)

	member := env.token(t, model.RoleMember)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPost, "/api/impact/volunteer", member, activity).Code)

	w = env.do(t, http.MethodGet, "/api/impact/users/"+user.ID.String()+"/score?period=monthly", member, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var summary model.ScoreSummary
	decodeData(t, w, &summary)
	assert.InDelta(t, 100, summary.TotalPoints, 0.001)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/impact/leaderboard?period=weekly", member, nil).Code)

	w = env.do(t, http.MethodDelete, "/api/impact/volunteer/ts-1", staff, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var removed struct {
		Removed int64 `json:"removed"`
	}
	decodeData(t, w, &removed)
	assert.Equal(t, int64(1), removed.Removed)
}

func TestAuditLogs_AdminOnlyAndPaged(t *testing.T) {
	env := newAPIEnv(t)
	admin := env.token(t, model.RoleAdmin)

	w := env.do(t, http.MethodPost, "/api/tax-rules", admin, service.StateTaxRuleRequest{
		StateCode: "TX", BaseRate: "6.25", Status: model.TaxStatusExempt,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/audit-logs", env.token(t, model.RoleStaff), nil).Code)

	w = env.do(t, http.MethodGet, "/api/audit-logs?action="+model.ActionCreateTaxRule, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []service.AuditLogResponse `json:"items"`
		Total int64                      `json:"total"`
	}
	decodeData(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "TX", page.Items[0].EntityID)
}
