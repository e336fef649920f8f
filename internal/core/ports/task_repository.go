package ports

import (
	"context"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// TaskFilter narrows a paged task listing. Each criterion is independently
// optional; nil means no constraint.
type TaskFilter struct {
	domain.PageQuery
	Status    *domain.Status
	Priority  *domain.Priority
	ProjectID *int64
}

// TaskRepository defines persistence for tasks, including dynamic filtered
// queries.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	FindPage(ctx context.Context, filter TaskFilter) (domain.Page[domain.Task], error)
	Update(ctx context.Context, task *domain.Task) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	CountByProjectID(ctx context.Context, projectID int64) (int64, error)
}
