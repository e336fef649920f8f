package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create creates a new task under an existing project.
//
// @Summary      Create Task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      taskRequest  true  "Task details"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  api.ProblemDetail
// @Failure      404   {object}  api.ProblemDetail
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req taskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), req.toInput(actor(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get retrieves one task by id.
//
// @Summary      Get Task by ID
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      404  {object}  api.ProblemDetail
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// List returns a paginated task listing with optional filters. Each of
// status, priority and projectId is independently optional.
//
// @Summary      Get Tasks with Filtering
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page number (0-based)"
// @Param        size       query     int     false  "Page size"
// @Param        sortBy     query     string  false  "Sort field"
// @Param        direction  query     string  false  "ASC or DESC"
// @Param        status     query     string  false  "TODO, DOING or DONE"
// @Param        priority   query     string  false  "LOW, MEDIUM or HIGH"
// @Param        projectId  query     int     false  "Project id"
// @Success      200  {object}  domain.Page[taskResponse]
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	filter, err := taskFilter(c)
	if err != nil {
		return err
	}

	page, err := h.taskService.FindByFilter(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.MapPage(page, func(t domain.Task) taskResponse {
		return toTaskResponse(&t)
	}))
}

// UpdateStatus sets the status of a task.
//
// @Summary      Update Task Status
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                      true  "Task id"
// @Param        body  body  taskStatusUpdateRequest  true  "New status"
// @Success      204
// @Failure      404  {object}  api.ProblemDetail
// @Router       /tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req taskStatusUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.taskService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdatePriority sets the priority of a task.
//
// @Summary      Update Task Priority
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int                        true  "Task id"
// @Param        body  body  taskPriorityUpdateRequest  true  "New priority"
// @Success      204
// @Failure      404  {object}  api.ProblemDetail
// @Router       /tasks/{id}/priority [put]
func (h *TaskHandler) UpdatePriority(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req taskPriorityUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.taskService.UpdatePriority(c.Request().Context(), id, req.Priority); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a task.
//
// @Summary      Delete Task
// @Tags         tasks
// @Security     BearerAuth
// @Param        id  path  int  true  "Task id"
// @Success      204
// @Failure      404  {object}  api.ProblemDetail
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func taskFilter(c echo.Context) (ports.TaskFilter, error) {
	query, err := pageQuery(c)
	if err != nil {
		return ports.TaskFilter{}, err
	}
	filter := ports.TaskFilter{PageQuery: query}

	if raw := c.QueryParam("status"); raw != "" {
		status := domain.Status(raw)
		if !domain.ValidStatus(status) {
			return ports.TaskFilter{}, domain.NewBadParameter(
				fmt.Sprintf("Parameter 'status' has invalid value '%s', expected TODO, DOING or DONE", raw))
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("priority"); raw != "" {
		priority := domain.Priority(raw)
		if !domain.ValidPriority(priority) {
			return ports.TaskFilter{}, domain.NewBadParameter(
				fmt.Sprintf("Parameter 'priority' has invalid value '%s', expected LOW, MEDIUM or HIGH", raw))
		}
		filter.Priority = &priority
	}

	projectID, err := queryInt64Ptr(c, "projectId")
	if err != nil {
		return ports.TaskFilter{}, err
	}
	filter.ProjectID = projectID

	return filter, nil
}
