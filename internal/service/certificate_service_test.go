package service

import (
	"context"
	"testing"

	"impactcore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificateLifecycle_EnablesExemption(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	buyer := env.createNonprofitBuyer(t)
	reviewer := env.createUser(t, 0, nil)
	env.createRule(t, "NY", "4", model.TaxStatusExempt, true)

	svc := NewCertificateService(env.certs, env.users, env.audit, env.txManager, fixedClock(testNow))
	exemptions := env.exemptionService()
	req := ExemptionRequest{BuyerID: &buyer.ID, StateCode: strPtr("NY"), IsCharitableUse: true}

	cert, err := svc.Submit(ctx, SubmitCertificateRequest{UserID: buyer.ID.String(), StateCode: "ny", CertificateNo: "NY-1", ExpiryDate: "2024-06-15"}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.CertificatePending, cert.Status)
	assert.False(t, exemptions.QualifiesForExemption(ctx, req))

	cert, err = svc.Review(ctx, cert.ID.String(), ReviewCertificateRequest{Status: model.CertificateApproved}, &reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CertificateApproved, cert.Status)
	require.NotNil(t, cert.ReviewedAt)

	// Valid through the last day even though testNow is midday.
	assert.True(t, exemptions.QualifiesForExemption(ctx, req))

	_, total, err := env.audit.List(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestCertificateService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCertificateService(env.certs, env.users, env.audit, env.txManager, fixedClock(testNow))
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitCertificateRequest{UserID: uuid.NewString(), StateCode: "NY", CertificateNo: "x"}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	user := env.createUser(t, 0, nil)
	_, err = svc.Submit(ctx, SubmitCertificateRequest{UserID: user.ID.String(), StateCode: "NY", CertificateNo: "x", ExpiryDate: "06/15/2024"}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Review(ctx, uuid.NewString(), ReviewCertificateRequest{Status: model.CertificateApproved}, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Review(ctx, uuid.NewString(), ReviewCertificateRequest{Status: model.CertificatePending}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
