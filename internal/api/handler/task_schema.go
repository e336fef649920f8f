package handler

import (
	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

// --- Request / Response types ---

type taskRequest struct {
	Title       string               `json:"title"       validate:"required"`
	Description string               `json:"description" validate:"max=1000"`
	Status      domain.Status        `json:"status"      validate:"required,oneof=TODO DOING DONE"`
	Priority    domain.Priority      `json:"priority"    validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate     domain.LocalDateTime `json:"dueDate"     validate:"required,gt"`
	ProjectID   int64                `json:"projectId"   validate:"required"`
}

type taskStatusUpdateRequest struct {
	Status domain.Status `json:"status" validate:"required,oneof=TODO DOING DONE"`
}

type taskPriorityUpdateRequest struct {
	Priority domain.Priority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
}

type taskResponse struct {
	ID          int64                 `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Status      domain.Status         `json:"status"`
	Priority    domain.Priority       `json:"priority"`
	DueDate     *domain.LocalDateTime `json:"dueDate,omitempty"`
	ProjectID   int64                 `json:"projectId"`
	CreatedAt   domain.LocalDateTime  `json:"createdAt"`
	UpdatedAt   domain.LocalDateTime  `json:"updatedAt"`
	CreatedBy   string                `json:"createdBy,omitempty"`
	UpdatedBy   string                `json:"updatedBy,omitempty"`
}

// --- Mapping ---

func (r taskRequest) toInput(actor string) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate.Time,
		ProjectID:   r.ProjectID,
		Actor:       actor,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     optionalDate(t.DueDate),
		ProjectID:   t.ProjectID,
		CreatedAt:   domain.NewLocalDateTime(t.CreatedAt),
		UpdatedAt:   domain.NewLocalDateTime(t.UpdatedAt),
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
	}
}
