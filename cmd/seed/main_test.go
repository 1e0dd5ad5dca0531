package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"impactcore/internal/database/dbtest"
	"impactcore/internal/repository"
	"impactcore/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_IsIdempotent(t *testing.T) {
	db := dbtest.NewTestDB(t)
	rules := repository.NewStateTaxRuleRepository(db)
	s := seeder{
		taxes:  service.NewTaxService(rules, repository.NewAuditRepository(db), repository.NewTransactionManager(db)),
		users:  service.NewUserService(repository.NewUserRepository(db), repository.NewOrganizationRepository(db), nil),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	ctx := context.Background()

	created, err := s.seedTaxRules(ctx, defaultTaxRules)
	require.NoError(t, err)
	assert.Equal(t, len(defaultTaxRules), created)

	created, err = s.seedTaxRules(ctx, defaultTaxRules)
	require.NoError(t, err)
	assert.Zero(t, created)

	_, total, err := rules.List(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(len(defaultTaxRules)), total)

	require.NoError(t, s.seedAdmin(ctx, "Admin", "admin@example.org", "secret1"))
	require.NoError(t, s.seedAdmin(ctx, "Admin", "admin@example.org", "secret1"))
}

func TestDefaultTaxRules_AreUniqueAndValid(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range defaultTaxRules {
		assert.Len(t, r.StateCode, 2)
		assert.False(t, seen[r.StateCode], "duplicate %s", r.StateCode)
		seen[r.StateCode] = true
		if r.Status == "no_state_tax" {
			assert.Equal(t, "0", r.BaseRate, r.StateCode)
		}
	}
	assert.Len(t, seen, 51)
}
