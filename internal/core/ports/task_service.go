package ports

import (
	"context"
	"time"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// CreateTaskInput carries a validated task create request.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
	DueDate     time.Time
	ProjectID   int64
	// Actor is the authenticated username recorded in the audit fields.
	Actor string
}

type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	FindByFilter(ctx context.Context, filter TaskFilter) (domain.Page[domain.Task], error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	UpdatePriority(ctx context.Context, id int64, priority domain.Priority) error
	Delete(ctx context.Context, id int64) error
}
