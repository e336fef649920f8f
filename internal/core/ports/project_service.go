package ports

import (
	"context"
	"time"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// CreateProjectInput carries a validated project create request.
// Zero time values mean the date was not supplied.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	// Actor is the authenticated username recorded in the audit fields.
	Actor string
}

// UpdateProjectInput is a partial update: nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Actor       string
}

type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByFilter(ctx context.Context, query domain.PageQuery) (domain.Page[domain.Project], error)
	Update(ctx context.Context, id int64, input UpdateProjectInput) error
	DeleteByID(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) error
}
