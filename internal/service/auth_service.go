package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"adminnotice/panel/internal/model"
	"adminnotice/panel/internal/repository"
	"adminnotice/panel/pkg/crypto"
	jwtpkg "adminnotice/panel/pkg/jwt"
)

// TokenSet is returned after a successful login.
type TokenSet struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*TokenSet, error)
	// Authenticate resolves an access token to its admin user.
	Authenticate(ctx context.Context, accessToken string) (*model.AdminUser, error)
}

type authService struct {
	userRepo   repository.AdminUserRepository
	jwtManager *jwtpkg.Manager
}

func NewAuthService(userRepo repository.AdminUserRepository, jwtManager *jwtpkg.Manager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenSet, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup admin user: %w", err)
	}
	if !crypto.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	return &TokenSet{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.AdminUser, error) {
	claims, err := s.jwtManager.Validate(accessToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != jwtpkg.TokenTypeAccess {
		return nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup admin user: %w", err)
	}
	return user, nil
}

// ensure authService implements AuthService
var _ AuthService = (*authService)(nil)
