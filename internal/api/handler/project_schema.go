package handler

import (
	"time"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

// --- Request / Response types ---

type projectRequest struct {
	Name        string                `json:"name"        validate:"required"`
	Description string                `json:"description" validate:"max=500"`
	StartDate   *domain.LocalDateTime `json:"startDate"   validate:"omitempty,gte"`
	EndDate     *domain.LocalDateTime `json:"endDate"     validate:"omitempty,gt"`
}

// projectUpdateRequest is a partial update: absent or null fields leave the
// stored value unchanged.
type projectUpdateRequest struct {
	Name        *string               `json:"name"        validate:"omitempty,max=100"`
	Description *string               `json:"description" validate:"omitempty,max=500"`
	StartDate   *domain.LocalDateTime `json:"startDate"   validate:"omitempty,gte"`
	EndDate     *domain.LocalDateTime `json:"endDate"     validate:"omitempty,gt"`
}

type projectResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	StartDate   *domain.LocalDateTime `json:"startDate,omitempty"`
	EndDate     *domain.LocalDateTime `json:"endDate,omitempty"`
	CreatedAt   domain.LocalDateTime  `json:"createdAt"`
	UpdatedAt   domain.LocalDateTime  `json:"updatedAt"`
	CreatedBy   string                `json:"createdBy,omitempty"`
	UpdatedBy   string                `json:"updatedBy,omitempty"`
}

type deleteByIDsRequest []int64

// --- Mapping ---

func (r projectRequest) toInput(actor string) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   derefTime(r.StartDate),
		EndDate:     derefTime(r.EndDate),
		Actor:       actor,
	}
}

func (r projectUpdateRequest) toInput(actor string) ports.UpdateProjectInput {
	input := ports.UpdateProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Actor:       actor,
	}
	if r.StartDate != nil {
		input.StartDate = &r.StartDate.Time
	}
	if r.EndDate != nil {
		input.EndDate = &r.EndDate.Time
	}
	return input
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   optionalDate(p.StartDate),
		EndDate:     optionalDate(p.EndDate),
		CreatedAt:   domain.NewLocalDateTime(p.CreatedAt),
		UpdatedAt:   domain.NewLocalDateTime(p.UpdatedAt),
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
	}
}

func derefTime(dt *domain.LocalDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	return dt.Time
}

func optionalDate(t time.Time) *domain.LocalDateTime {
	if t.IsZero() {
		return nil
	}
	dt := domain.NewLocalDateTime(t)
	return &dt
}
