package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/api"
	"github.com/projecthub/projects-api/internal/api/handler"
	"github.com/projecthub/projects-api/internal/core/domain"
	"github.com/projecthub/projects-api/internal/core/ports"
)

// The handler tests exercise the full request path: routing, binding,
// validation and the problem-detail error mapping, with the services
// stubbed out at the port boundary.

type fakeUserService struct {
	lastInput ports.CreateUserInput
	err       error
}

func (s *fakeUserService) Create(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)
	return &domain.User{
		ID:        1,
		Username:  input.Username,
		Email:     input.Email,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type fakeAuthService struct {
	err error
}

func (s *fakeAuthService) Authenticate(_ context.Context, username, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + username, nil
}

type fakeProjectService struct {
	lastCreate ports.CreateProjectInput
	lastUpdate ports.UpdateProjectInput
	lastIDs    []int64
	err        error
}

func (s *fakeProjectService) Create(_ context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)
	return &domain.Project{ID: 7, Name: input.Name, Description: input.Description,
		StartDate: input.StartDate, EndDate: input.EndDate, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *fakeProjectService) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)
	return &domain.Project{ID: id, Name: "Stored", CreatedAt: now, UpdatedAt: now}, nil
}

func (s *fakeProjectService) FindByFilter(_ context.Context, query domain.PageQuery) (domain.Page[domain.Project], error) {
	if s.err != nil {
		return domain.Page[domain.Project]{}, s.err
	}
	query, err := query.Normalize()
	if err != nil {
		return domain.Page[domain.Project]{}, err
	}
	return domain.NewPage[domain.Project](nil, query.Page, query.Size, 0), nil
}

func (s *fakeProjectService) Update(_ context.Context, _ int64, input ports.UpdateProjectInput) error {
	s.lastUpdate = input
	return s.err
}

func (s *fakeProjectService) DeleteByID(context.Context, int64) error { return s.err }

func (s *fakeProjectService) DeleteByIDs(_ context.Context, ids []int64) error {
	s.lastIDs = ids
	return s.err
}

type fakeTaskService struct {
	lastCreate ports.CreateTaskInput
	lastFilter ports.TaskFilter
	err        error
}

func (s *fakeTaskService) Create(_ context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	s.lastCreate = input
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)
	return &domain.Task{ID: 3, Title: input.Title, Status: input.Status, Priority: input.Priority,
		DueDate: input.DueDate, ProjectID: input.ProjectID, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *fakeTaskService) FindByID(_ context.Context, id int64) (*domain.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	now := time.Date(2025, 10, 16, 14, 30, 0, 0, time.UTC)
	return &domain.Task{ID: id, Title: "Stored", Status: domain.StatusTodo,
		Priority: domain.PriorityLow, ProjectID: 7, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *fakeTaskService) FindByFilter(_ context.Context, filter ports.TaskFilter) (domain.Page[domain.Task], error) {
	s.lastFilter = filter
	if s.err != nil {
		return domain.Page[domain.Task]{}, s.err
	}
	return domain.NewPage[domain.Task](nil, 0, 10, 0), nil
}

func (s *fakeTaskService) UpdateStatus(context.Context, int64, domain.Status) error { return s.err }

func (s *fakeTaskService) UpdatePriority(context.Context, int64, domain.Priority) error {
	return s.err
}

func (s *fakeTaskService) Delete(context.Context, int64) error { return s.err }

type fixture struct {
	e        *echo.Echo
	users    *fakeUserService
	auth     *fakeAuthService
	projects *fakeProjectService
	tasks    *fakeTaskService
}

func newFixture() *fixture {
	f := &fixture{
		e:        echo.New(),
		users:    &fakeUserService{},
		auth:     &fakeAuthService{},
		projects: &fakeProjectService{},
		tasks:    &fakeTaskService{},
	}
	f.e.Validator = handler.NewValidator()
	f.e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	users := handler.NewUserHandler(f.users)
	auth := handler.NewAuthHandler(f.auth)
	projects := handler.NewProjectHandler(f.projects)
	tasks := handler.NewTaskHandler(f.tasks)

	f.e.POST("/api/v1/users", users.Create)
	f.e.POST("/api/v1/auth/login", auth.Login)
	f.e.POST("/api/v1/projects", projects.Create)
	f.e.GET("/api/v1/projects", projects.List)
	f.e.GET("/api/v1/projects/:id", projects.Get)
	f.e.PUT("/api/v1/projects/:id", projects.Update)
	f.e.DELETE("/api/v1/projects/:id", projects.Delete)
	f.e.POST("/api/v1/projects/delete-by-ids", projects.DeleteByIDs)
	f.e.POST("/api/v1/tasks", tasks.Create)
	f.e.GET("/api/v1/tasks", tasks.List)
	f.e.DELETE("/api/v1/tasks/:id", tasks.Delete)
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not a json object: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, parsed
}

func validationErrors(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	props, ok := body["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties in %v", body)
	}
	fields, ok := props["validationErrors"].(map[string]any)
	if !ok {
		t.Fatalf("expected validationErrors in %v", props)
	}
	return fields
}

func TestCreateUser(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/users",
		`{"username":"alice","password":"Password1!","email":"alice@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["username"] != "alice" || body["role"] != domain.RoleUser {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, ok := body["password"]; ok {
		t.Fatal("the password must never be echoed back")
	}
	if f.users.lastInput.Password != "Password1!" {
		t.Fatalf("service received wrong password: %q", f.users.lastInput.Password)
	}
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/users",
		`{"username":"al","password":"weak","email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["title"] != "Validation error" {
		t.Fatalf("unexpected title: %v", body["title"])
	}
	fields := validationErrors(t, body)
	for _, want := range []string{"username", "password", "email"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected a %s error, got %v", want, fields)
		}
	}
}

func TestCreateUserPasswordPolicy(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "Password1!", false}, // "!" is in the allowed special set
		{"too short", "Pw1!", true},
		{"no digit", "Password!", true},
		{"no upper", "password1!", true},
		{"no special", "Password11", true},
		{"forbidden char", "Password1#", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := f.do(t, http.MethodPost, "/api/v1/users",
				`{"username":"alice","password":"`+tc.password+`","email":"alice@example.com"}`)
			if tc.ok && rec.Code != http.StatusBadRequest {
				t.Fatalf("password %q should be rejected, got %d", tc.password, rec.Code)
			}
			if !tc.ok && rec.Code != http.StatusCreated {
				t.Fatalf("password %q should be accepted, got %d", tc.password, rec.Code)
			}
		})
	}
}

func TestCreateUserMalformedBody(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/users", `{"username": "alice",`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["title"] != "Malformed JSON request" {
		t.Fatalf("unexpected title: %v", body["title"])
	}
}

func TestCreateUserConflict(t *testing.T) {
	f := newFixture()
	f.users.err = domain.NewConflict("Username already exists, please, try other username")

	rec, body := f.do(t, http.MethodPost, "/api/v1/users",
		`{"username":"alice","password":"Password1!","email":"alice@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body["detail"] != "Username already exists, please, try other username" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestLogin(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"Password1!"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["token"] != "token-for-alice" {
		t.Fatalf("unexpected token: %v", body["token"])
	}
}

func TestLoginFailure(t *testing.T) {
	f := newFixture()
	f.auth.err = domain.NewUnauthenticated("Invalid username or password")

	rec, body := f.do(t, http.MethodPost, "/api/v1/auth/login",
		`{"username":"alice","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body["detail"] != "Invalid username or password" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestCreateProjectWithDates(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/projects",
		`{"name":"Relaunch","description":"Q4 site","startDate":"2030-11-01T09:00","endDate":"2030-12-01T18:30"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["startDate"] != "2030-11-01T09:00" || body["endDate"] != "2030-12-01T18:30" {
		t.Fatalf("dates should round-trip in wire format, got %v / %v", body["startDate"], body["endDate"])
	}
	if f.projects.lastCreate.StartDate.IsZero() {
		t.Fatal("service should receive the parsed start date")
	}
}

func TestCreateProjectBadDateFormat(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/projects",
		`{"name":"Relaunch","startDate":"01/11/2030"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["detail"] != "Invalid date format. Use 'yyyy-MM-ddTHH:mm' (e.g., 2025-10-16T14:30)" {
		t.Fatalf("expected the date format hint, got %v", body["detail"])
	}
}

func TestCreateProjectRejectsPastDates(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/projects",
		`{"name":"Relaunch","endDate":"2020-01-01T09:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields := validationErrors(t, body)
	if _, ok := fields["endDate"]; !ok {
		t.Fatalf("expected an endDate error, got %v", fields)
	}
}

func TestListProjectsEmptyPageShape(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodGet, "/api/v1/projects", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	content, ok := body["content"].([]any)
	if !ok || len(content) != 0 {
		t.Fatalf("content must be an empty array, got %v", body["content"])
	}
	if body["currentPage"] != float64(0) || body["size"] != float64(10) {
		t.Fatalf("expected default pagination in the body, got %v", body)
	}
	if body["first"] != true || body["last"] != true {
		t.Fatalf("an empty result is both first and last, got %v", body)
	}
}

func TestGetProjectBadID(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodGet, "/api/v1/projects/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["detail"] != "Parameter 'id' has invalid value 'abc', expected integer" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestListProjectsBadPageParam(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodGet, "/api/v1/projects?page=two", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["detail"] != "Parameter 'page' has invalid value 'two', expected integer" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestUpdateProjectPartialBody(t *testing.T) {
	f := newFixture()

	rec, _ := f.do(t, http.MethodPut, "/api/v1/projects/7", `{"name":"Renamed"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if f.projects.lastUpdate.Name == nil || *f.projects.lastUpdate.Name != "Renamed" {
		t.Fatalf("expected a name patch, got %+v", f.projects.lastUpdate)
	}
	if f.projects.lastUpdate.Description != nil || f.projects.lastUpdate.StartDate != nil {
		t.Fatalf("omitted fields must stay nil, got %+v", f.projects.lastUpdate)
	}
}

func TestDeleteProjectsByIDs(t *testing.T) {
	f := newFixture()

	rec, _ := f.do(t, http.MethodPost, "/api/v1/projects/delete-by-ids", `[1,2,3]`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.projects.lastIDs) != 3 || f.projects.lastIDs[0] != 1 {
		t.Fatalf("expected ids [1 2 3], got %v", f.projects.lastIDs)
	}
}

func TestDeleteProjectConflict(t *testing.T) {
	f := newFixture()
	f.projects.err = domain.NewConflict("Project 7 has 2 tasks and cannot be deleted")

	rec, body := f.do(t, http.MethodDelete, "/api/v1/projects/7", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body["title"] != "Conflict" {
		t.Fatalf("unexpected title: %v", body["title"])
	}
}

func TestCreateTask(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/tasks",
		`{"title":"Write docs","status":"TODO","priority":"HIGH","dueDate":"2030-12-01T09:00","projectId":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body["status"] != "TODO" || body["priority"] != "HIGH" || body["projectId"] != float64(7) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodPost, "/api/v1/tasks",
		`{"title":"","status":"BLOCKED","priority":"URGENT","dueDate":"2030-12-01T09:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	fields := validationErrors(t, body)
	for _, want := range []string{"title", "status", "priority", "projectId"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected a %s error, got %v", want, fields)
		}
	}
}

func TestListTasksFilters(t *testing.T) {
	f := newFixture()

	rec, _ := f.do(t, http.MethodGet, "/api/v1/tasks?status=TODO&priority=HIGH&projectId=7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	filter := f.tasks.lastFilter
	if filter.Status == nil || *filter.Status != domain.StatusTodo {
		t.Fatalf("expected a TODO status filter, got %+v", filter)
	}
	if filter.Priority == nil || *filter.Priority != domain.PriorityHigh {
		t.Fatalf("expected a HIGH priority filter, got %+v", filter)
	}
	if filter.ProjectID == nil || *filter.ProjectID != 7 {
		t.Fatalf("expected a project filter, got %+v", filter)
	}
}

func TestListTasksBadStatus(t *testing.T) {
	f := newFixture()

	rec, body := f.do(t, http.MethodGet, "/api/v1/tasks?status=BLOCKED", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["detail"] != "Parameter 'status' has invalid value 'BLOCKED', expected TODO, DOING or DONE" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	f := newFixture()
	f.tasks.err = domain.NewNotFound("Task not found by id: 42")

	rec, body := f.do(t, http.MethodDelete, "/api/v1/tasks/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body["title"] != "Resource not found" {
		t.Fatalf("unexpected title: %v", body["title"])
	}
}
