package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/cache"
	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

const (
	projectNotFoundMessage = "Project not found by id: %d"
	scheduleInvalidMessage = "End date must be after start date"
	projectHasTasksMessage = "Project %d has %d task(s) and cannot be deleted"
)

type projectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	// byID caches single project lookups; listings caches whole pages keyed
	// by the query parameters. Both are invalidated explicitly on writes.
	byID     *cache.Cache[int64, *domain.Project]
	listings *cache.Cache[string, domain.Page[domain.Project]]
	log      zerolog.Logger
}

// NewProjectService returns a ProjectService wrapping the repositories with
// the read-through caches described in the service docs.
func NewProjectService(
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	byID *cache.Cache[int64, *domain.Project],
	listings *cache.Cache[string, domain.Page[domain.Project]],
	log zerolog.Logger,
) ports.ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		byID:     byID,
		listings: listings,
		log:      log,
	}
}

func (s *projectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now()
	project := &domain.Project{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   input.Actor,
		UpdatedBy:   input.Actor,
	}
	if !project.ValidSchedule() {
		return nil, domain.NewValidation(map[string]string{"endDate": scheduleInvalidMessage})
	}

	created, err := s.projects.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	// A new project changes every listing page.
	s.listings.InvalidateAll()

	s.log.Info().Int64("project_id", created.ID).Str("name", created.Name).Msg("project created")
	return created, nil
}

func (s *projectService) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.byID.GetOrLoad(id, func() (*domain.Project, error) {
		return s.projects.FindByID(ctx, id)
	})
}

func (s *projectService) FindByFilter(ctx context.Context, query domain.PageQuery) (domain.Page[domain.Project], error) {
	query, err := query.Normalize()
	if err != nil {
		return domain.Page[domain.Project]{}, err
	}

	key := listingKey(query)
	return s.listings.GetOrLoad(key, func() (domain.Page[domain.Project], error) {
		return s.projects.FindPage(ctx, query)
	})
}

// Update applies only the non-nil patch fields, re-validates the schedule
// window against the patched state, persists, and invalidates both caches.
func (s *projectService) Update(ctx context.Context, id int64, input ports.UpdateProjectInput) error {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}

	if !project.ValidSchedule() {
		return domain.NewValidation(map[string]string{"endDate": scheduleInvalidMessage})
	}

	project.UpdatedAt = time.Now()
	project.UpdatedBy = input.Actor
	if err := s.projects.Update(ctx, project); err != nil {
		return err
	}

	s.invalidate(id)
	s.log.Info().Int64("project_id", id).Msg("project updated")
	return nil
}

// DeleteByID removes a project. Projects with dependent tasks are rejected
// with a conflict rather than orphaning or cascading.
func (s *projectService) DeleteByID(ctx context.Context, id int64) error {
	exists, err := s.projects.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound(fmt.Sprintf(projectNotFoundMessage, id))
	}

	count, err := s.tasks.CountByProjectID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.NewConflict(fmt.Sprintf(projectHasTasksMessage, id, count))
	}

	if err := s.projects.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidate(id)
	s.log.Info().Int64("project_id", id).Msg("project deleted")
	return nil
}

// DeleteByIDs is best-effort: missing ids and projects with dependent tasks
// are skipped, everything else is deleted. Both caches are invalidated
// entirely once, on error paths too, so deletes completed before a
// mid-batch failure are never served stale.
func (s *projectService) DeleteByIDs(ctx context.Context, ids []int64) error {
	defer func() {
		s.byID.InvalidateAll()
		s.listings.InvalidateAll()
	}()

	for _, id := range ids {
		exists, err := s.projects.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}

		count, err := s.tasks.CountByProjectID(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			s.log.Warn().Int64("project_id", id).Int64("tasks", count).Msg("batch delete skipped project with tasks")
			continue
		}

		if err := s.projects.DeleteByID(ctx, id); err != nil {
			return err
		}
	}

	s.log.Info().Int("requested", len(ids)).Msg("batch project delete completed")
	return nil
}

func (s *projectService) invalidate(id int64) {
	s.byID.Invalidate(id)
	s.listings.InvalidateAll()
}

func listingKey(q domain.PageQuery) string {
	return fmt.Sprintf("%d:%d:%s:%s", q.Page, q.Size, q.SortBy, q.Direction)
}
