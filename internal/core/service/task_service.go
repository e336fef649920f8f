package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

const taskNotFoundMessage = "Task not found by id: %d"

type taskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
	log      zerolog.Logger
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, log zerolog.Logger) ports.TaskService {
	return &taskService{tasks: tasks, projects: projects, log: log}
}

func (s *taskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	// The referenced project must exist; FindByID reports NOT_FOUND itself.
	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
		ProjectID:   input.ProjectID,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   input.Actor,
		UpdatedBy:   input.Actor,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("task_id", created.ID).Int64("project_id", created.ProjectID).Msg("task created")
	return created, nil
}

func (s *taskService) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

func (s *taskService) FindByFilter(ctx context.Context, filter ports.TaskFilter) (domain.Page[domain.Task], error) {
	query, err := filter.PageQuery.Normalize()
	if err != nil {
		return domain.Page[domain.Task]{}, err
	}
	filter.PageQuery = query
	return s.tasks.FindPage(ctx, filter)
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	task.Status = status
	task.UpdatedAt = time.Now()
	return s.tasks.Update(ctx, task)
}

func (s *taskService) UpdatePriority(ctx context.Context, id int64, priority domain.Priority) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	task.Priority = priority
	task.UpdatedAt = time.Now()
	return s.tasks.Update(ctx, task)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	exists, err := s.tasks.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound(fmt.Sprintf(taskNotFoundMessage, id))
	}
	return s.tasks.DeleteByID(ctx, id)
}
