package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/repositories"
	"github.com/nurhusenm/Devtracker/services"
)

// In-memory repositories so the whole wire surface can be exercised without
// a running MongoDB.

type memUserRepo struct{ users map[string]models.User }

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	r.users[user.Email] = *user
	return nil
}

type memProjectRepo struct{ projects map[string]models.Project }

func (r *memProjectRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	p, ok := r.projects[id.Hex()]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *memProjectRepo) Insert(_ context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	r.projects[project.ID.Hex()] = *project
	return nil
}

func (r *memProjectRepo) Update(_ context.Context, project *models.Project) error {
	if _, ok := r.projects[project.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	r.projects[project.ID.Hex()] = *project
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.projects[id.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.projects, id.Hex())
	return nil
}

type memTaskRepo struct{ tasks map[string]models.Task }

func (r *memTaskRepo) FindByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := r.tasks[id.Hex()]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &t, nil
}

func (r *memTaskRepo) Insert(_ context.Context, task *models.Task) error {
	task.ID = primitive.NewObjectID()
	r.tasks[task.ID.Hex()] = *task
	return nil
}

func (r *memTaskRepo) Update(_ context.Context, task *models.Task) error {
	stored, ok := r.tasks[task.ID.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = task.Title
	stored.Description = task.Description
	stored.Status = task.Status
	stored.Priority = task.Priority
	stored.DueDate = task.DueDate
	r.tasks[task.ID.Hex()] = stored
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tasks[id.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id.Hex())
	return nil
}

func newTestRouter() (*mux.Router, *memProjectRepo, *memTaskRepo) {
	userRepo := &memUserRepo{users: make(map[string]models.User)}
	projectRepo := &memProjectRepo{projects: make(map[string]models.Project)}
	taskRepo := &memTaskRepo{tasks: make(map[string]models.Task)}

	router := NewRouter(
		NewAuthHandler(services.NewUserService(userRepo)),
		NewProjectHandler(services.NewProjectService(projectRepo)),
		NewTaskHandler(services.NewTaskService(taskRepo, projectRepo)),
	)
	return router, projectRepo, taskRepo
}

func doRequest(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m.Message
}

// registerAndLogin drives the real endpoints and returns a usable token.
func registerAndLogin(t *testing.T, router *mux.Router, email string) (token, userID string) {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "user-" + email,
		"email":    email,
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "Sup3rSecret!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.UserID
}

func createProject(t *testing.T, router *mux.Router, token, name string) models.Project {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/projects", token, map[string]string{
		"name":        name,
		"description": "description of " + name,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	return project
}

func TestRegisterLoginAndGateAcceptsToken(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodGet, "/projects", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _, _ := newTestRouter()
	registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "again",
		"email":    "alice@example.com",
		"password": "other",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", messageOf(t, rec))
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "a@b.com",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid credentials", messageOf(t, rec))
}

func TestAuthGateRejects(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", messageOf(t, rec))

	rec = doRequest(t, router, http.MethodGet, "/projects", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", messageOf(t, rec))
}

func TestDeleteProjectForbiddenForOtherUser(t *testing.T) {
	router, projectRepo, _ := newTestRouter()
	aliceToken, _ := registerAndLogin(t, router, "alice@example.com")
	bobToken, _ := registerAndLogin(t, router, "bob@example.com")

	project := createProject(t, router, aliceToken, "Alice's project")

	rec := doRequest(t, router, http.MethodDelete, "/projects/"+project.ID.Hex(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, projectRepo.projects, project.ID.Hex())
}

func TestPatchProjectStatusOnly(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")
	project := createProject(t, router, token, "API")

	rec := doRequest(t, router, http.MethodPatch, "/projects/"+project.ID.Hex(), token, map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, project.Name, updated.Name)
	assert.Equal(t, project.Description, updated.Description)
	assert.Equal(t, models.ProjectCompleted, updated.Status)
}

func TestPatchMissingProject(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodPatch, "/projects/"+primitive.NewObjectID().Hex(), token, map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", messageOf(t, rec))
}

func TestTaskLifecycle(t *testing.T) {
	router, _, taskRepo := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")
	project := createProject(t, router, token, "API")

	// Create defaults to todo.
	rec := doRequest(t, router, http.MethodPost, "/tasks", token, map[string]string{
		"title":     "X",
		"projectId": project.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, models.StatusTodo, task.Status)

	// Exactly one task with title X under the project.
	rec = doRequest(t, router, http.MethodGet, "/tasks/project/"+project.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tasks []models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "X", tasks[0].Title)

	// A projectId in the patch body must never move the task.
	otherProject := createProject(t, router, token, "Other")
	rec = doRequest(t, router, http.MethodPatch, "/tasks/"+task.ID.Hex(), token, map[string]string{
		"status":    "in-progress",
		"projectId": otherProject.ID.Hex(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	stored := taskRepo.tasks[task.ID.Hex()]
	assert.Equal(t, project.ID, stored.ProjectID)
	assert.Equal(t, models.StatusInProgress, stored.Status)

	// Delete succeeds once, then 404s.
	rec = doRequest(t, router, http.MethodDelete, "/tasks/"+task.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", messageOf(t, rec))

	rec = doRequest(t, router, http.MethodDelete, "/tasks/"+task.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", messageOf(t, rec))
}

func TestCreateTaskUnderMissingProject(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodPost, "/tasks", token, map[string]string{
		"title":     "X",
		"projectId": primitive.NewObjectID().Hex(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", messageOf(t, rec))
}

func TestListTasksOnForeignProjectForbidden(t *testing.T) {
	router, _, _ := newTestRouter()
	aliceToken, _ := registerAndLogin(t, router, "alice@example.com")
	bobToken, _ := registerAndLogin(t, router, "bob@example.com")
	project := createProject(t, router, aliceToken, "Alice's project")

	rec := doRequest(t, router, http.MethodGet, "/tasks/project/"+project.ID.Hex(), bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized to view this project", messageOf(t, rec))
}

func TestPatchTaskUnknownPriority(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")
	project := createProject(t, router, token, "API")

	rec := doRequest(t, router, http.MethodPost, "/tasks", token, map[string]string{
		"title":     "X",
		"projectId": project.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	rec = doRequest(t, router, http.MethodPatch, "/tasks/"+task.ID.Hex(), token, map[string]string{
		"priority": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid priority value", messageOf(t, rec))
}

func TestCreateTaskOnForeignProjectForbidden(t *testing.T) {
	router, _, _ := newTestRouter()
	aliceToken, _ := registerAndLogin(t, router, "alice@example.com")
	bobToken, _ := registerAndLogin(t, router, "bob@example.com")
	project := createProject(t, router, aliceToken, "Alice's project")

	rec := doRequest(t, router, http.MethodPost, "/tasks", bobToken, map[string]string{
		"title":     "X",
		"projectId": project.ID.Hex(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateProjectValidation(t *testing.T) {
	router, _, _ := newTestRouter()
	token, _ := registerAndLogin(t, router, "alice@example.com")

	rec := doRequest(t, router, http.MethodPost, "/projects", token, map[string]string{
		"name": "no description",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and Description are required", messageOf(t, rec))
}

func TestHealthLine(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := doRequest(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DevTracker API is running!", rec.Body.String())
}
