package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

type createTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	ProjectID   string              `json:"projectId"`
	DueDate     *time.Time          `json:"dueDate"`
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	projectID := mux.Vars(r)["projectId"]
	if projectID == "" {
		writeMessage(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	tasks, err := h.Service.ListByProject(r.Context(), userID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to view this project")
		default:
			logging.Logger.Errorf("Failed to fetch tasks: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to fetch tasks")
		}
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.ProjectID == "" {
		writeMessage(w, http.StatusBadRequest, "Project ID is required")
		return
	}

	task, err := h.Service.Create(r.Context(), userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to add tasks to this project")
		case errors.Is(err, services.ErrInvalidStatus):
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
		case errors.Is(err, services.ErrInvalidPriority):
			writeMessage(w, http.StatusBadRequest, "Invalid priority value")
		default:
			logging.Logger.Errorf("Failed to create task: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to create task")
		}
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial patch. The patch type carries no project
// reference, so a projectId in the body is dropped before it can take effect.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	taskID := mux.Vars(r)["taskid"]
	if taskID == "" {
		writeMessage(w, http.StatusBadRequest, "Task ID is required")
		return
	}

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.Service.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			writeMessage(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to update this task")
		case errors.Is(err, services.ErrInvalidStatus):
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
		case errors.Is(err, services.ErrInvalidPriority):
			writeMessage(w, http.StatusBadRequest, "Invalid priority value")
		default:
			logging.Logger.Errorf("Failed to update task: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, mux.Vars(r)["taskid"]); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			writeMessage(w, http.StatusNotFound, "Task not found")
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to delete this task")
		default:
			logging.Logger.Errorf("Failed to delete task: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete task")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Task deleted successfully")
}
