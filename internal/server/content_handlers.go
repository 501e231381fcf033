package server

import (
	"encoding/json"

	"folio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetContent handles GET /api/content
// @Summary List all content sections
// @Tags content
// @Produce json
// @Success 200 {object} models.Response
// @Router /content [get]
func (s *Server) GetContent(c *fiber.Ctx) error {
	sections, err := s.contentService.GetAll(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"content": sections}))
}

// GetContentSection handles GET /api/content/:section
// @Summary Get one content section
// @Description A known section that was never written returns an empty document, not 404.
// @Tags content
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Router /content/{section} [get]
func (s *Server) GetContentSection(c *fiber.Ctx) error {
	content, err := s.contentService.GetSection(c.Context(), c.Params("section"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"content": content}))
}

// UpsertContent handles POST /api/content
// @Summary Create or replace a content section
// @Tags content
// @Accept json
// @Produce json
// @Param request body object{section=string,data=object} true "Section document"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /content [post]
func (s *Server) UpsertContent(c *fiber.Ctx) error {
	var req struct {
		Section string          `json:"section"`
		Data    json.RawMessage `json:"data"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	content, err := s.contentService.Upsert(c.Context(), req.Section, req.Data, s.currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.OKMessage("Content saved", fiber.Map{"content": content}))
}

// DeleteContentSection handles DELETE /api/content/:section
// @Summary Delete a content section
// @Tags content
// @Produce json
// @Param section path string true "Section name"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /content/{section} [delete]
func (s *Server) DeleteContentSection(c *fiber.Ctx) error {
	if err := s.contentService.Delete(c.Context(), c.Params("section")); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OKMessage("Content deleted", nil))
}
