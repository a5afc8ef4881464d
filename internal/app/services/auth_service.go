package services

import (
	"context"
	"strings"

	"github.com/edupoint/sis-backend/internal/app/models"
	"github.com/edupoint/sis-backend/internal/app/repositories"
	"github.com/edupoint/sis-backend/internal/pkg/apperrors"
	"github.com/edupoint/sis-backend/internal/pkg/auth"
	"github.com/edupoint/sis-backend/internal/pkg/logger"
)

// TokenPair is the credential set handed out on login and refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int
	RefreshExpiresIn int
}

// AuthService handles login, token refresh and logout.
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. A wrong email and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The used token
// is revoked and its replacement stored in one transaction; refresh tokens
// are single-use.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	userID, err := s.tokenRepo.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	accessToken, newRefreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.tokenRepo.Rotate(ctx, refreshToken, newRefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, nil, err
	}

	return user, &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     newRefreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

// Logout revokes all of the user's refresh tokens.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeUserTokens(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}
