package service

import (
	"context"
	"testing"

	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/pkg/apperr"
	"rockspec-notes/internal/pkg/password"
	"rockspec-notes/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (IAuthService, *password.Hasher) {
	store := memory.NewStore()
	hasher := password.NewHasher(bcrypt.MinCost)
	return NewAuthService(memory.NewRepositoryFactory(store), hasher), hasher
}

func requireValidation(t *testing.T, err error, field, message string) {
	t.Helper()
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, field, ve.Field)
	assert.Equal(t, message, ve.Message)
}

func TestJoinValidationOrder(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	// Both fields invalid: email is reported, password never looked at.
	_, err := svc.Join(ctx, &dto.JoinRequest{Email: "nope", Password: "x"})
	requireValidation(t, err, "email", "Email is invalid")

	_, err = svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: ""})
	requireValidation(t, err, "password", "Password is required")

	_, err = svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: "short"})
	requireValidation(t, err, "password", "Password is too short")
}

func TestJoinStoresDigestNotPlaintext(t *testing.T) {
	svc, hasher := newAuthFixture()

	user, err := svc.Join(context.Background(), &dto.JoinRequest{
		Email:    "kody@remix.run",
		Password: "twixrox99",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "twixrox99", user.PasswordHash)
	assert.True(t, hasher.Verify("twixrox99", user.PasswordHash))
	assert.NotEqual(t, user.Id.String(), "00000000-0000-0000-0000-000000000000")
}

func TestJoinRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: "twixrox99"})
	require.NoError(t, err)

	_, err = svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: "different99"})
	var ce *apperr.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "email", ce.Field)
	assert.Equal(t, "A user already exists with this email", ce.Message)
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: "twixrox99"})
	require.NoError(t, err)

	// Unknown account and wrong password carry the same message.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "ghost@remix.run", Password: "whatever"})
	requireValidation(t, err, "email", "Invalid email or password")

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "kody@remix.run", Password: "wrongwrong"})
	requireValidation(t, err, "password", "Invalid email or password")
}

func TestLoginResolvesUser(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	joined, err := svc.Join(ctx, &dto.JoinRequest{Email: "kody@remix.run", Password: "twixrox99"})
	require.NoError(t, err)

	user, err := svc.Login(ctx, &dto.LoginRequest{Email: "kody@remix.run", Password: "twixrox99"})
	require.NoError(t, err)
	assert.Equal(t, joined.Id, user.Id)
}
