// Package service implements the business logic between handlers and repositories.
package service

import (
	"context"
	"strings"

	"folio/internal/models"
	"folio/internal/observability"
	"folio/internal/repository"
	"folio/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default.
const bcryptCost = 12

// AuthService owns registration, credential verification, and token rotation.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// RegisterInput is the bootstrap registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the outcome of a successful credential exchange.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates the admin account. It succeeds at most once globally: as
// soon as any user exists, registration is closed. The guard is an explicit
// business rule, not a schema constraint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		observability.AuthFailures.WithLabelValues("registration_closed").Inc()
		return nil, models.NewRegistrationClosedError()
	}

	var fields []models.FieldError
	if err := validation.ValidateUsername(in.Username); err != nil {
		fields = append(fields, models.FieldError{Field: "username", Message: err.Error()})
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		fields = append(fields, models.FieldError{Field: "email", Message: err.Error()})
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		fields = append(fields, models.FieldError{Field: "password", Message: err.Error()})
	}
	if len(fields) > 0 {
		return nil, models.NewValidationError("Invalid registration data", fields...)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    strings.ToLower(in.Email),
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair. Both an unknown email
// and a wrong password produce the identical generic error so the endpoint
// cannot be used for account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	return s.issuePair(user)
}

// Refresh validates the refresh token, confirms the user still exists, and
// rotates both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		observability.AuthFailures.WithLabelValues("refresh_missing").Inc()
		return nil, models.NewUnauthorizedError("Refresh token required")
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		observability.AuthFailures.WithLabelValues("refresh_invalid").Inc()
		return nil, models.NewUnauthorizedError("Invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("refresh_user_gone").Inc()
		return nil, models.NewUnauthorizedError("Invalid or expired refresh token")
	}

	return s.issuePair(user)
}

// CurrentUser resolves the identity behind a verified access token.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("User no longer exists")
	}
	return user, nil
}

func (s *AuthService) issuePair(user *models.User) (*LoginResult, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
