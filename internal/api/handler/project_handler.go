package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create creates a new project.
//
// @Summary      Create Project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  api.ProblemDetail
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), req.toInput(actor(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toProjectResponse(project))
}

// List returns a paginated list of projects.
//
// @Summary      List Projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (0-based)"
// @Param        size       query     int     false  "Page size"
// @Param        sortBy     query     string  false  "Sort field"
// @Param        direction  query     string  false  "ASC or DESC"
// @Success      200  {object}  domain.Page[projectResponse]
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	query, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := h.projectService.FindByFilter(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.MapPage(page, func(p domain.Project) projectResponse {
		return toProjectResponse(&p)
	}))
}

// Get retrieves one project by id.
//
// @Summary      Get Project by ID
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      404  {object}  api.ProblemDetail
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// Update partially updates a project; absent fields stay unchanged.
//
// @Summary      Update Project
// @Tags         projects
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                   true  "Project id"
// @Param        body  body  projectUpdateRequest  true  "Fields to update"
// @Success      204
// @Failure      404  {object}  api.ProblemDetail
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req projectUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.projectService.Update(c.Request().Context(), id, req.toInput(actor(c))); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a project without tasks.
//
// @Summary      Delete Project
// @Tags         projects
// @Security     BearerAuth
// @Param        id  path  int  true  "Project id"
// @Success      204
// @Failure      404  {object}  api.ProblemDetail
// @Failure      409  {object}  api.ProblemDetail
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteByIDs removes a batch of projects, best effort.
//
// @Summary      Delete Projects by IDs
// @Tags         projects
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  []int  true  "Project ids"
// @Success      204
// @Router       /projects/delete-by-ids [post]
func (h *ProjectHandler) DeleteByIDs(c echo.Context) error {
	var ids deleteByIDsRequest
	if err := bindBody(c, &ids); err != nil {
		return err
	}

	if err := h.projectService.DeleteByIDs(c.Request().Context(), ids); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
