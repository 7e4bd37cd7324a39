package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lead-intake-service/internal/auth"
	"github.com/spec-kit/lead-intake-service/internal/config"
	"github.com/spec-kit/lead-intake-service/internal/domain"
	apperrors "github.com/spec-kit/lead-intake-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *domain.User) {
	t.Helper()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 30
	cfg.Auth.BcryptCost = 4

	repo := &memUserRepo{store: newMemStore()}
	hash, err := auth.HashPassword("supersecure", cfg.Auth.BcryptCost)
	require.NoError(t, err)

	user := &domain.User{
		Email:        "attorney1@example.com",
		PasswordHash: hash,
		CanIntake:    true,
	}
	require.NoError(t, repo.Create(context.Background(), user))

	return NewAuthService(cfg, repo), user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a parseable token for valid credentials", func(t *testing.T) {
		svc, seeded := newAuthFixture(t)

		user, token, expiresAt, err := svc.Login(ctx, "attorney1@example.com", "supersecure")
		require.NoError(t, err)
		require.Equal(t, seeded.ID, user.ID)
		require.True(t, expiresAt.After(time.Now()))

		claims, err := svc.TokenManager().ParseToken(token)
		require.NoError(t, err)
		require.Equal(t, seeded.ID, claims.SubjectID)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, _, _, err := svc.Login(ctx, "attorney1@example.com", "wrong")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "UNAUTHORIZED", domainErr.Code)
		require.Equal(t, "incorrect email or password", domainErr.Message)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "supersecure")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		require.Equal(t, "UNAUTHORIZED", domainErr.Code)
		require.Equal(t, "incorrect email or password", domainErr.Message)
	})
}
