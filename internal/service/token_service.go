package service

import (
	"errors"
	"fmt"
	"time"

	"folio/internal/config"
	"folio/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "folio-api"
	tokenAudience = "folio-client"

	// AccessTokenTTL bounds how long a bearer token stays usable.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL bounds the refresh cookie lifetime.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid indicates a malformed token or bad signature.
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims are the claims carried by a short-lived access token.
type AccessClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a long-lived refresh token.
// Deliberately minimal: only the user reference.
type RefreshClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the access/refresh token pair.
type TokenService struct {
	secret        []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService creates a TokenService from the application config.
func NewTokenService(cfg *config.Config) *TokenService {
	refreshSecret := cfg.JWTRefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.JWTSecret
	}
	return &TokenService{
		secret:        []byte(cfg.JWTSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTokenTTL,
		refreshTTL:    RefreshTokenTTL,
	}
}

func registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        generateJTI(),
	}
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// IssueAccessToken signs a short-lived token encoding identity and role.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	claims := AccessClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Role:             string(user.Role),
		RegisteredClaims: registeredClaims(s.accessTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueRefreshToken signs a long-lived token carrying only the user reference.
// It must never appear in a JSON body; delivery is cookie-only.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	if len(s.refreshSecret) == 0 {
		return "", fmt.Errorf("JWT refresh secret not configured")
	}

	claims := RefreshClaims{
		UserID:           user.ID,
		RegisteredClaims: registeredClaims(s.refreshTTL),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

// VerifyAccessToken validates signature, expiry, issuer, and audience.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	err := s.verify(tokenString, claims, s.secret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken validates a refresh token read from the cookie.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	err := s.verify(tokenString, claims, s.refreshSecret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
