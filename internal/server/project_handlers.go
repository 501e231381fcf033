package server

import (
	"folio/internal/models"
	"folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

const defaultProjectPageSize = 12

// GetProjects handles GET /api/projects
// @Summary List projects
// @Description List projects with optional category, featured, and search filters.
// @Tags projects
// @Produce json
// @Param category query string false "Filter by category"
// @Param featured query bool false "Filter by featured flag"
// @Param search query string false "Match against title, description, and technologies"
// @Param sort query string false "Sort key: createdAt, title, or viewCount; prefix with - for descending"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} models.Response
// @Router /projects [get]
func (s *Server) GetProjects(c *fiber.Ctx) error {
	pq := parsePageQuery(c, defaultProjectPageSize)

	input := service.ListProjectsInput{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     pq.Page,
		Limit:    pq.Limit,
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		input.Featured = &featured
	}

	projects, total, err := s.projectService.List(c.Context(), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(models.OK(fiber.Map{
		"projects":   projects,
		"pagination": models.NewPagination(pq.Page, pq.Limit, total),
	}))
}

// GetProjectBySlug handles GET /api/projects/:slug
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Router /projects/{slug} [get]
func (s *Server) GetProjectBySlug(c *fiber.Ctx) error {
	project, err := s.projectService.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OK(fiber.Map{"project": project}))
}

// TrackProjectView handles POST /api/projects/:id/view
// @Summary Count a project view
// @Description Increment the project's view counter. Unknown IDs are ignored.
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Response
// @Router /projects/{id}/view [post]
func (s *Server) TrackProjectView(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.projectService.TrackView(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OKMessage("View recorded", nil))
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body service.CreateProjectInput true "Project"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response
// @Security BearerAuth
// @Router /projects [post]
func (s *Server) CreateProject(c *fiber.Ctx) error {
	var req service.CreateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	project, err := s.projectService.Create(c.Context(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(
		models.OKMessage("Project created", fiber.Map{"project": project}))
}

// UpdateProject handles PUT /api/projects/:id
// @Summary Update a project
// @Description Partial update; absent fields are left untouched. A new title re-derives the slug.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body service.UpdateProjectInput true "Fields to change"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /projects/{id} [put]
func (s *Server) UpdateProject(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req service.UpdateProjectInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	project, svcErr := s.projectService.Update(c.Context(), id, req)
	if svcErr != nil {
		return models.RespondWithError(c, svcErr)
	}

	return c.JSON(models.OKMessage("Project updated", fiber.Map{"project": project}))
}

// DeleteProject handles DELETE /api/projects/:id
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.Response
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (s *Server) DeleteProject(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.projectService.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(models.OKMessage("Project deleted", nil))
}
