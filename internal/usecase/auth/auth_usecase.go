// Package auth registers accounts and issues the tokens that guard the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/gdugdh24/sparring-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/sparring-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest represents account registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthUseCase struct {
	userRepo   repository.UserRepository
	tokens     *TokenManager
	blacklist  repository.TokenBlacklist
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthUseCase wires the auth flows. blacklist may be nil, in which case
// logout cannot revoke tokens before they expire.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokens *TokenManager,
	blacklist repository.TokenBlacklist,
	log *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:   userRepo,
		tokens:     tokens,
		blacklist:  blacklist,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.OrNop(log),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an active account with a bcrypt-hashed password.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*TokenPair, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return uc.tokens.Issue(user.ID)
}

// Refresh exchanges a valid refresh token for a new pair. The used refresh
// token is revoked.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := uc.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}

	if _, err := uc.activeUser(ctx, claims.Subject); err != nil {
		return nil, err
	}

	pair, err := uc.tokens.Issue(claims.Subject)
	if err != nil {
		return nil, err
	}
	uc.revoke(ctx, claims)
	return pair, nil
}

// Logout revokes the access token until its natural expiry.
func (uc *AuthUseCase) Logout(ctx context.Context, accessToken string) error {
	claims, err := uc.tokens.Parse(accessToken, TokenTypeAccess)
	if err != nil {
		return err
	}
	if uc.blacklist == nil {
		uc.logger.Warn("token revocation unavailable", zap.String("user_id", claims.Subject))
		return nil
	}
	if err := uc.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	return nil
}

// Authenticate resolves an access token to the id of an active user.
func (uc *AuthUseCase) Authenticate(ctx context.Context, accessToken string) (string, error) {
	claims, err := uc.tokens.Parse(accessToken, TokenTypeAccess)
	if err != nil {
		return "", err
	}
	if err := uc.checkRevoked(ctx, claims.ID); err != nil {
		return "", err
	}

	user, err := uc.activeUser(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (uc *AuthUseCase) activeUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (uc *AuthUseCase) checkRevoked(ctx context.Context, tokenID string) error {
	if uc.blacklist == nil {
		return nil
	}
	revoked, err := uc.blacklist.IsRevoked(ctx, tokenID)
	if err != nil {
		return err
	}
	if revoked {
		return domain.ErrInvalidToken
	}
	return nil
}

func (uc *AuthUseCase) revoke(ctx context.Context, claims *Claims) {
	if uc.blacklist == nil {
		return
	}
	if err := uc.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		uc.logger.Warn("failed to revoke refresh token", zap.String("user_id", claims.Subject), zap.Error(err))
	}
}
