package service

import (
	"context"
	"testing"

	"impactcore/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeeService(env *testEnv) FeeService {
	return NewFeeService(DefaultFeeConfig(), env.rules, env.listings, env.exemptionService(), env.metrics, discardLogger())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s = %s, want %s", field, got.StringFixed(2), want)
}

func TestCalculateFees_CardNoStateNoBuyer(t *testing.T) {
	env := newTestEnv(t)
	b, err := newFeeService(env).CalculateFees(context.Background(), FeeInput{
		Amount:          dec("100"),
		PaymentMethod:   PaymentMethodCard,
		IsCharitableUse: true,
	})
	require.NoError(t, err)

	assertMoney(t, "5.50", b.PlatformFee, "platform_fee")
	assertMoney(t, "3.00", b.TransactionFee, "transaction_fee")
	assertMoney(t, "0", b.SalesTax, "sales_tax")
	assertMoney(t, "91.50", b.SellerEarnings, "seller_earnings")
	assertMoney(t, "100", b.TotalBuyerPays, "total_buyer_pays")
	assert.False(t, b.IsExempt)
	assert.Equal(t, []string{PaymentMethodCard}, env.metrics.feeQuotes)
}

func TestCalculateFees_PointsAccepted(t *testing.T) {
	env := newTestEnv(t)
	b, err := newFeeService(env).CalculateFees(context.Background(), FeeInput{
		Amount:        dec("200"),
		PaymentMethod: PaymentMethodPoints,
		AcceptsPoints: true,
	})
	require.NoError(t, err)

	assertMoney(t, "11.00", b.PlatformFee, "platform_fee")
	assertMoney(t, "2.00", b.TransactionFee, "transaction_fee")
	assertMoney(t, "1", b.TransactionFeePct, "transaction_fee_pct")
}

func TestCalculateFees_PointsNotAccepted(t *testing.T) {
	env := newTestEnv(t)
	_, err := newFeeService(env).CalculateFees(context.Background(), FeeInput{
		Amount:        dec("50"),
		PaymentMethod: PaymentMethodPoints,
	})
	assert.ErrorIs(t, err, ErrUnsupportedPaymentMethod)
	assert.Empty(t, env.metrics.feeQuotes)
}

func TestCalculateFees_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newFeeService(env)

	_, err := svc.CalculateFees(context.Background(), FeeInput{Amount: dec("-1"), PaymentMethod: PaymentMethodCard})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CalculateFees(context.Background(), FeeInput{Amount: dec("10"), PaymentMethod: "cash"})
	assert.ErrorIs(t, err, ErrUnsupportedPaymentMethod)
}

func TestCalculateFees_StateTax(t *testing.T) {
	env := newTestEnv(t)
	env.createRule(t, "CA", "7.25", model.TaxStatusExempt, false)
	svc := newFeeService(env)

	b, err := svc.CalculateFees(context.Background(), FeeInput{
		Amount:        dec("80"),
		PaymentMethod: PaymentMethodCard,
		SellerState:   strPtr("CA"),
	})
	require.NoError(t, err)
	assertMoney(t, "5.80", b.SalesTax, "sales_tax")
	assertMoney(t, "7.25", b.SalesTaxRate, "sales_tax_rate")
	assertMoney(t, "80", b.TotalBuyerPays, "total_buyer_pays")
	assertMoney(t, "67.40", b.SellerEarnings, "seller_earnings")

	b, err = svc.CalculateFees(context.Background(), FeeInput{
		Amount:        dec("80"),
		PaymentMethod: PaymentMethodCard,
		SellerState:   strPtr("ZZ"),
	})
	require.NoError(t, err)
	assertMoney(t, "0", b.SalesTax, "sales_tax for unknown state")
}

func TestCalculateFees_ExemptBuyerPaysNoTax(t *testing.T) {
	env := newTestEnv(t)
	env.createRule(t, "CA", "7.25", model.TaxStatusExempt, false)
	buyer := env.createNonprofitBuyer(t)

	b, err := newFeeService(env).CalculateFees(context.Background(), FeeInput{
		Amount:          dec("80"),
		PaymentMethod:   PaymentMethodCard,
		SellerState:     strPtr("CA"),
		BuyerID:         &buyer.ID,
		IsCharitableUse: true,
	})
	require.NoError(t, err)
	assert.True(t, b.IsExempt)
	assertMoney(t, "0", b.SalesTax, "sales_tax")
	assertMoney(t, "0", b.SalesTaxRate, "sales_tax_rate")
}

func TestCalculateFees_PartsSumToAmount(t *testing.T) {
	env := newTestEnv(t)
	env.createRule(t, "WA", "6.5", model.TaxStatusNonExempt, false)
	svc := newFeeService(env)
	cent := dec("0.01")

	for _, raw := range []string{"0", "0.01", "0.99", "1.05", "19.99", "33.33", "100", "1234.56", "99999.99"} {
		for _, method := range []string{PaymentMethodCard, PaymentMethodPoints} {
			amount := dec(raw)
			b, err := svc.CalculateFees(context.Background(), FeeInput{
				Amount:        amount,
				PaymentMethod: method,
				SellerState:   strPtr("WA"),
				AcceptsPoints: true,
			})
			require.NoError(t, err)

			sum := b.PlatformFee.Add(b.TransactionFee).Add(b.SalesTax).Add(b.SellerEarnings)
			assert.True(t, sum.Sub(amount).Abs().LessThanOrEqual(cent), "%s/%s: parts sum to %s", raw, method, sum)
			assert.True(t, b.TotalBuyerPays.Equal(amount), "%s/%s: buyer pays %s", raw, method, b.TotalBuyerPays)
		}
	}
}

func TestQuote_UsesListingAcceptance(t *testing.T) {
	env := newTestEnv(t)
	org := env.createOrg(t, false, nil)
	listing := env.createListing(t, org.ID, 10, false)
	svc := newFeeService(env)

	// The listing overrides the request flag.
	_, err := svc.Quote(context.Background(), FeeQuoteRequest{
		Amount:        "40",
		PaymentMethod: PaymentMethodPoints,
		ListingID:     listing.ID.String(),
		AcceptsPoints: true,
	})
	assert.ErrorIs(t, err, ErrUnsupportedPaymentMethod)

	resp, err := svc.Quote(context.Background(), FeeQuoteRequest{Amount: "40", PaymentMethod: PaymentMethodCard, ListingID: listing.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, "2.20", resp.PlatformFee)
	assert.Equal(t, "1.20", resp.TransactionFee)
	assert.Equal(t, "40.00", resp.TotalBuyerPays)
	assert.Equal(t, "36.60", resp.SellerEarnings)
}

func TestQuote_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newFeeService(env)

	_, err := svc.Quote(context.Background(), FeeQuoteRequest{Amount: "abc", PaymentMethod: PaymentMethodCard})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Quote(context.Background(), FeeQuoteRequest{Amount: "1", PaymentMethod: PaymentMethodCard, BuyerID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Quote(context.Background(), FeeQuoteRequest{Amount: "1", PaymentMethod: PaymentMethodCard, ListingID: "7f0b3c4e-0000-4000-8000-000000000000"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseFeeConfig(t *testing.T) {
	cfg, err := ParseFeeConfig("", "2.9", "")
	require.NoError(t, err)
	assert.True(t, cfg.PlatformPct.Equal(dec("5.5")))
	assert.True(t, cfg.CardPct.Equal(dec("2.9")))
	assert.True(t, cfg.PointsPct.Equal(dec("1")))

	_, err = ParseFeeConfig("-1", "", "")
	assert.Error(t, err)
	_, err = ParseFeeConfig("", "x", "")
	assert.Error(t, err)
}
