package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/sparring-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the JWT claims of both token kinds. Subject carries the user id.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenManager signs and verifies HS256 tokens. Access and refresh tokens
// use separate secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (m *TokenManager) Issue(userID string) (*TokenPair, error) {
	access, err := m.sign(userID, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(userID, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

func (m *TokenManager) sign(userID, tokenType string) (string, error) {
	secret, ttl := m.accessSecret, m.accessTTL
	if tokenType == TokenTypeRefresh {
		secret, ttl = m.refreshSecret, m.refreshTTL
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

// Parse verifies tokenString as a token of the given type. Any failure is
// reported as domain.ErrInvalidToken.
func (m *TokenManager) Parse(tokenString, tokenType string) (*Claims, error) {
	secret := m.accessSecret
	if tokenType == TokenTypeRefresh {
		secret = m.refreshSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	if claims.Type != tokenType || claims.Subject == "" || claims.ID == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
