package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

// In-memory test doubles for the repository and security ports. They keep
// call counters so tests can assert how often the services reach the
// persistence layer (the caching tests depend on this).

type stubUserRepository struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: map[string]*domain.User{}}
}

func (r *stubUserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.users[stored.Username] = &stored
	return &stored, nil
}

func (r *stubUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, domain.NewNotFound("User not found: " + username)
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubProjectRepository struct {
	projects  map[int64]*domain.Project
	nextID    int64
	findCalls int
	pageCalls int

	// failDeleteID makes DeleteByID fail for one id, simulating a
	// mid-batch infrastructure error.
	failDeleteID int64
	deleteErr    error
}

func newStubProjectRepository() *stubProjectRepository {
	return &stubProjectRepository{projects: map[int64]*domain.Project{}}
}

func (r *stubProjectRepository) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	r.nextID++
	stored := *project
	stored.ID = r.nextID
	r.projects[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *stubProjectRepository) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	r.findCalls++
	project, ok := r.projects[id]
	if !ok {
		return nil, domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", id))
	}
	copied := *project
	return &copied, nil
}

func (r *stubProjectRepository) FindPage(_ context.Context, query domain.PageQuery) (domain.Page[domain.Project], error) {
	r.pageCalls++
	ids := make([]int64, 0, len(r.projects))
	for id := range r.projects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if query.Direction == domain.DirectionDesc {
			return ids[i] > ids[j]
		}
		return ids[i] < ids[j]
	})

	content := []domain.Project{}
	start := query.Page * query.Size
	for i := start; i < len(ids) && i < start+query.Size; i++ {
		content = append(content, *r.projects[ids[i]])
	}
	return domain.NewPage(content, query.Page, query.Size, int64(len(ids))), nil
}

func (r *stubProjectRepository) Update(_ context.Context, project *domain.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", project.ID))
	}
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *stubProjectRepository) DeleteByID(_ context.Context, id int64) error {
	if r.deleteErr != nil && id == r.failDeleteID {
		return r.deleteErr
	}
	if _, ok := r.projects[id]; !ok {
		return domain.NewNotFound(fmt.Sprintf("Project not found by id: %d", id))
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.projects[id]
	return ok, nil
}

type stubTaskRepository struct {
	tasks  map[int64]*domain.Task
	nextID int64
}

func newStubTaskRepository() *stubTaskRepository {
	return &stubTaskRepository{tasks: map[int64]*domain.Task{}}
}

func (r *stubTaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.nextID++
	stored := *task
	stored.ID = r.nextID
	r.tasks[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *stubTaskRepository) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", id))
	}
	copied := *task
	return &copied, nil
}

func (r *stubTaskRepository) FindPage(_ context.Context, filter ports.TaskFilter) (domain.Page[domain.Task], error) {
	ids := make([]int64, 0, len(r.tasks))
	for id, task := range r.tasks {
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.ProjectID != nil && task.ProjectID != *filter.ProjectID {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	content := []domain.Task{}
	start := filter.Page * filter.Size
	for i := start; i < len(ids) && i < start+filter.Size; i++ {
		content = append(content, *r.tasks[ids[i]])
	}
	return domain.NewPage(content, filter.Page, filter.Size, int64(len(ids))), nil
}

func (r *stubTaskRepository) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", task.ID))
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *stubTaskRepository) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.NewNotFound(fmt.Sprintf("Task not found by id: %d", id))
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *stubTaskRepository) CountByProjectID(_ context.Context, projectID int64) (int64, error) {
	var count int64
	for _, task := range r.tasks {
		if task.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

type stubHasher struct{}

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Verify(hash, plain string) bool { return hash == "hashed:"+plain }

type stubCodec struct{}

func (stubCodec) Issue(subject string) (string, error) { return "token-for-" + subject, nil }

func (stubCodec) Verify(token string) (string, error) {
	const prefix = "token-for-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", fmt.Errorf("invalid token")
	}
	return token[len(prefix):], nil
}
