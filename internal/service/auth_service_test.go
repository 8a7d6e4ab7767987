package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"adminnotice/panel/internal/config"
	"adminnotice/panel/internal/repository"
	jwtpkg "adminnotice/panel/pkg/jwt"
)

func newAuthService(t *testing.T) (AuthService, uuid.UUID) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	id := uuid.New()
	repo, err := repository.NewStaticAdminUserRepository([]config.AdminUserConfig{{
		ID:           id.String(),
		Username:     "admin",
		PasswordHash: string(hash),
		Capabilities: []string{"manage_options"},
	}})
	require.NoError(t, err)

	return NewAuthService(repo, jwtpkg.NewManager("key", "panel", time.Hour)), id
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	svc, id := newAuthService(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, "admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.Equal(t, int64(3600), tokens.ExpiresIn)

	user, err := svc.Authenticate(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
}

func TestAuthService_LoginRejects(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ghost", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AuthenticateRejects(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Valid signature, unknown user.
	token, err := jwtpkg.NewManager("key", "panel", time.Hour).GenerateAccessToken(uuid.New(), "ghost")
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUserNotFound)
}
