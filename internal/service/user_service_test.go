package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssuer struct {
	issued []uuid.UUID
	err    error
}

func (s *stubIssuer) Issue(userID uuid.UUID, role string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = append(s.issued, userID)
	return "token-" + role, testNow.Add(time.Hour), nil
}

func TestUserService_CreateAndLogin(t *testing.T) {
	env := newTestEnv(t)
	issuer := &stubIssuer{}
	svc := NewUserService(env.users, env.orgs, issuer)
	ctx := context.Background()
	org := env.createOrg(t, true, nil)

	created, err := svc.CreateUser(ctx, CreateUserRequest{
		Name: "Ada", Email: "Ada@Example.org", Password: "secret1", Role: "member", OrganizationID: org.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.org", created.Email)
	require.NotNil(t, created.OrganizationID)
	assert.Equal(t, org.ID, *created.OrganizationID)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "Ada", Email: "ada@example.org", Password: "secret1", Role: "member"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	tok, err := svc.Login(ctx, LoginUserRequest{Email: "ada@example.org", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "token-member", tok.Token)
	assert.Equal(t, []uuid.UUID{created.ID}, issuer.issued)

	_, err = svc.Login(ctx, LoginUserRequest{Email: "ada@example.org", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, LoginUserRequest{Email: "nobody@example.org", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.orgs, &stubIssuer{err: errors.New("boom")})
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserRequest{Name: "x", Email: "x@example.org", Password: "secret1", Role: "owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateUser(ctx, CreateUserRequest{Name: "x", Email: "x@example.org", Password: "secret1", Role: "member", OrganizationID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetUserByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GetUserByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}
