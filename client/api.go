package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nurhusenm/Devtracker/models"
)

// APIError is a non-2xx response from the server, carrying the message the
// server put in the body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to the DevTracker API. Every request carries the session's
// bearer token and goes through a circuit breaker so a dead server fails
// fast instead of piling up timeouts.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClient(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "devtracker-api",
			MaxRequests: 1,
			Timeout:     5 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
		}),
	}
}

type httpResult struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.session.Token != "" {
			req.Header.Set("Authorization", "Bearer "+c.session.Token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		// Server errors count against the breaker; client errors do not.
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &APIError{Status: resp.StatusCode, Message: messageFrom(data)}
		}
		return httpResult{status: resp.StatusCode, body: data}, nil
	})
	if err != nil {
		return err
	}

	res := result.(httpResult)
	if res.status >= http.StatusBadRequest {
		return &APIError{Status: res.status, Message: messageFrom(res.body)}
	}
	if out != nil {
		if err := json.Unmarshal(res.body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func messageFrom(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return string(body)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil)
}

// Login authenticates and persists the returned token in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	return c.session.Save(resp.Token, resp.UserID)
}

// Logout clears the persisted session.
func (c *Client) Logout() error {
	return c.session.Clear()
}

type CreateProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status,omitempty"`
}

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodPost, "/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	var project models.Project
	if err := c.do(ctx, http.MethodPatch, "/projects/"+id, patch, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil)
}

type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      models.TaskStatus   `json:"status,omitempty"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	ProjectID   string              `json:"projectId"`
}

func (c *Client) TasksByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/project/"+projectID, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}
