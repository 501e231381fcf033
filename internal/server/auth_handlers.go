// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
// @Summary Admin registration
// @Description Register the single admin account. Closed once any account exists.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 403 {object} models.Response
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.authService.Register(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		models.OKMessage("Account created", fiber.Map{"user": user}))
}

// Login handles POST /api/auth/login
// @Summary Admin login
// @Description Exchange credentials for an access token. The refresh token travels only as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c,
			models.NewValidationError("Email and password are required"))
	}

	result, err := s.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setRefreshCookie(c, result.RefreshToken)

	return c.JSON(models.OK(fiber.Map{
		"accessToken": result.AccessToken,
		"user":        result.User,
	}))
}

// Refresh handles POST /api/auth/refresh
// @Summary Rotate tokens
// @Description Exchange the refresh cookie for a fresh access token and a rotated refresh cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	result, err := s.authService.Refresh(c.Context(), c.Cookies(refreshCookieName))
	if err != nil {
		s.clearRefreshCookie(c)
		return models.RespondWithError(c, err)
	}

	s.setRefreshCookie(c, result.RefreshToken)

	return c.JSON(models.OK(fiber.Map{
		"accessToken": result.AccessToken,
		"user":        result.User,
	}))
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Clear the refresh cookie. Succeeds whether or not a session exists.
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearRefreshCookie(c)
	return c.JSON(models.OKMessage("Logged out", nil))
}

// Me handles GET /api/auth/me
// @Summary Current account
// @Description Return the authenticated admin's profile.
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.Response
// @Security BearerAuth
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.authService.CurrentUser(c.Context(), s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"user": user}))
}
