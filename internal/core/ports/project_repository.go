package ports

import (
	"context"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// ProjectRepository defines persistence for projects, including paged reads.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindPage(ctx context.Context, query domain.PageQuery) (domain.Page[domain.Project], error)
	Update(ctx context.Context, project *domain.Project) error
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
