package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"impactcore/internal/database/dbtest"
	"impactcore/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunInTx_RollsBackOnError(t *testing.T) {
	db := dbtest.NewTestDB(t)
	users := NewUserRepository(db)
	txManager := NewTransactionManager(db)
	ctx := context.Background()

	user := &model.User{Name: "a", Email: "a@example.org", Password: "x", Role: model.RoleMember, PointsBalance: 100}
	require.NoError(t, users.Create(ctx, user))

	boom := errors.New("boom")
	err := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		assert.True(t, InTx(txCtx))
		ok, err := users.DebitPoints(txCtx, user.ID, 40)
		require.NoError(t, err)
		require.True(t, ok)
		// Nested calls join the outer transaction.
		return txManager.RunInTx(txCtx, func(inner context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	reloaded, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), reloaded.PointsBalance)
}

func TestDebitPoints_RefusesOverdraft(t *testing.T) {
	db := dbtest.NewTestDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := &model.User{Name: "b", Email: "b@example.org", Password: "x", Role: model.RoleMember, PointsBalance: 10}
	require.NoError(t, users.Create(ctx, user))

	ok, err := users.DebitPoints(ctx, user.ID, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.DebitPoints(ctx, user.ID, 10)
	require.NoError(t, err)
	assert.True(t, ok)

	locked, err := users.LockForUpdate(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), locked[user.ID].PointsBalance)
}

func TestImpactRepository_SumsWithinWindow(t *testing.T) {
	db := dbtest.NewTestDB(t)
	impact := NewImpactRepository(db)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	for i, p := range []struct {
		source string
		points float64
		age    int
	}{
		{model.SourceVolunteer, 100, 1},
		{model.SourceVolunteer, 50, 10},
		{model.SourceFollow, 1, 3},
		{model.SourceDonation, 500, 45},
	} {
		require.NoError(t, impact.Create(ctx, &model.ImpactPoint{
			UserID:       userID,
			SourceType:   p.source,
			SourceID:     uuid.NewString(),
			Points:       p.points,
			ActivityDate: now.AddDate(0, 0, -p.age),
		}), "row %d", i)
	}

	totals, err := impact.SumBySource(ctx, userID, now.AddDate(0, 0, -30), now)
	require.NoError(t, err)
	bySource := map[string]float64{}
	for _, st := range totals {
		bySource[st.SourceType] = st.Total
	}
	assert.InDelta(t, 150, bySource[model.SourceVolunteer], 0.001)
	assert.InDelta(t, 1, bySource[model.SourceFollow], 0.001)
	assert.NotContains(t, bySource, model.SourceDonation)

	n, err := impact.CountBetween(ctx, userID, model.SourceVolunteer, now.AddDate(0, 0, -30), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAfterCommit_RunsOnlyOnCommit(t *testing.T) {
	db := dbtest.NewTestDB(t)
	txManager := NewTransactionManager(db)
	ctx := context.Background()
	var ran []string

	err := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		AfterCommit(txCtx, func() { ran = append(ran, "outer") })
		return txManager.RunInTx(txCtx, func(inner context.Context) error {
			AfterCommit(inner, func() { ran = append(ran, "nested") })
			assert.Empty(t, ran)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "nested"}, ran)

	ran = nil
	boom := errors.New("boom")
	err = txManager.RunInTx(ctx, func(txCtx context.Context) error {
		AfterCommit(txCtx, func() { ran = append(ran, "rolled back") })
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, ran)

	AfterCommit(ctx, func() { ran = append(ran, "no tx") })
	assert.Equal(t, []string{"no tx"}, ran)
}

func TestImpactRepository_OneRowPerSourceEvent(t *testing.T) {
	db := dbtest.NewTestDB(t)
	impact := NewImpactRepository(db)
	txManager := NewTransactionManager(db)
	ctx := context.Background()
	userID := uuid.New()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	point := func() *model.ImpactPoint {
		return &model.ImpactPoint{UserID: userID, SourceType: model.SourceVolunteer, SourceID: "act-1", Points: 40, ActivityDate: day}
	}

	created, err := impact.CreateOnce(ctx, point())
	require.NoError(t, err)
	assert.True(t, created)

	// The second insert loses the race without aborting its transaction.
	err = txManager.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := impact.CreateOnce(txCtx, point())
		require.NoError(t, err)
		assert.False(t, created)
		other := point()
		other.SourceID = "act-2"
		created, err = impact.CreateOnce(txCtx, other)
		require.NoError(t, err)
		assert.True(t, created)
		return nil
	})
	require.NoError(t, err)

	// A plain insert is rejected by the unique index.
	assert.ErrorIs(t, impact.Create(ctx, point()), gorm.ErrDuplicatedKey)

	// Another user may hold the same source event.
	theirs := point()
	theirs.UserID = uuid.New()
	created, err = impact.CreateOnce(ctx, theirs)
	require.NoError(t, err)
	assert.True(t, created)

	n, err := impact.CountBetween(ctx, userID, model.SourceVolunteer, day, day.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
