package service

import (
	"context"
	"testing"
	"time"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCompliance(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		period     *string
		threshold  int
		wantStatus string
		wantMonths int
		wantLock   bool
	}{
		{"recent filing", strPtr("202301"), 36, model.ComplianceCurrent, 17, false},
		{"old filing", strPtr("201801"), 36, model.ComplianceExpired, 77, true},
		{"exactly at threshold", strPtr("202106"), 36, model.ComplianceExpired, 36, true},
		{"one month short", strPtr("202107"), 36, model.ComplianceCurrent, 35, false},
		{"separators stripped", strPtr("2023-01"), 36, model.ComplianceCurrent, 17, false},
		{"default threshold", strPtr("201801"), 0, model.ComplianceExpired, 77, true},
		{"custom threshold", strPtr("202301"), 12, model.ComplianceExpired, 17, true},
		{"future period", strPtr("202512"), 36, model.ComplianceCurrent, 0, false},
		{"current month", strPtr("202406"), 36, model.ComplianceCurrent, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := EvaluateCompliance(tt.period, "org-1", tt.threshold, now)
			assert.Equal(t, tt.wantStatus, rec.Status)
			require.NotNil(t, rec.MonthsSince)
			assert.Equal(t, tt.wantMonths, *rec.MonthsSince)
			assert.Equal(t, tt.wantLock, rec.ShouldLock)
			assert.Equal(t, tt.wantLock, rec.IsExpired)
			assert.Equal(t, now, rec.CheckedAt)
			require.NotNil(t, rec.PeriodEndDate)
		})
	}
}

func TestEvaluateCompliance_PeriodEndIsLastDayOfMonth(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for period, want := range map[string]string{
		"202402": "2024-02-29",
		"202302": "2023-02-28",
		"202312": "2023-12-31",
		"202304": "2023-04-30",
	} {
		rec := EvaluateCompliance(strPtr(period), "", 36, now)
		require.NotNil(t, rec.PeriodEndDate, period)
		assert.Equal(t, want, rec.PeriodEndDate.Format("2006-01-02"), period)
	}
}

func TestEvaluateCompliance_MissingAndInvalid(t *testing.T) {
	tests := []struct {
		name   string
		period *string
		want   string
	}{
		{"nil", nil, model.ComplianceMissing},
		{"empty", strPtr(""), model.ComplianceMissing},
		{"whitespace", strPtr("   "), model.ComplianceMissing},
		{"too short", strPtr("20231"), model.ComplianceInvalid},
		{"too long", strPtr("2023011"), model.ComplianceInvalid},
		{"letters only", strPtr("January"), model.ComplianceInvalid},
		{"month zero", strPtr("202300"), model.ComplianceInvalid},
		{"month thirteen", strPtr("202313"), model.ComplianceInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := EvaluateCompliance(tt.period, "", 36, testNow)
			assert.Equal(t, tt.want, rec.Status)
			assert.True(t, rec.ShouldLock)
			assert.False(t, rec.IsExpired)
			assert.Nil(t, rec.MonthsSince)
		})
	}
}

func TestEvaluateCompliance_Deterministic(t *testing.T) {
	a := EvaluateCompliance(strPtr("202401"), "x", 36, testNow)
	b := EvaluateCompliance(strPtr("202401"), "x", 36, testNow)
	assert.Equal(t, a, b)
}

func TestCheckOrganization_PersistsStatus(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComplianceService(env.orgs, env.audit, env.txManager, 36, env.metrics, fixedClock(testNow), discardLogger())

	org := &model.Organization{Name: "Food Bank", EIN: "11-1111111", IsNonprofit: true, TaxPeriod: strPtr("201801")}
	require.NoError(t, env.orgs.Create(context.Background(), org))

	rec, err := svc.CheckOrganization(context.Background(), org.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.ComplianceExpired, rec.Status)
	assert.Equal(t, "11-1111111", rec.Identifier)

	stored, err := env.orgs.FindByID(context.Background(), org.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComplianceExpired, stored.ComplianceStatus)
	assert.True(t, stored.ComplianceLocked)
	require.NotNil(t, stored.ComplianceCheckedAt)

	_, total, err := env.audit.List(context.Background(), 1, 10, model.ActionComplianceCheck)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{model.ComplianceExpired}, env.metrics.compliance)

	_, err = svc.CheckOrganization(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComplianceService_EvaluateUsesConfiguredThreshold(t *testing.T) {
	env := newTestEnv(t)
	svc := NewComplianceService(env.orgs, env.audit, env.txManager, 12, nil, fixedClock(testNow), discardLogger())

	rec := svc.Evaluate(ComplianceEvaluateRequest{TaxPeriod: strPtr("202301")})
	assert.Equal(t, 12, rec.ThresholdMonths)
	assert.Equal(t, model.ComplianceExpired, rec.Status)

	rec = svc.Evaluate(ComplianceEvaluateRequest{TaxPeriod: strPtr("202301"), ThresholdMonths: 36})
	assert.Equal(t, model.ComplianceCurrent, rec.Status)
}
