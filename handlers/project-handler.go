package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type createProjectRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	projects, err := h.Service.ListByOwner(r.Context(), userID)
	if err != nil {
		logging.Logger.Errorf("Failed to list projects: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Server Error")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Name == "" || req.Description == "" {
		writeMessage(w, http.StatusBadRequest, "Name and Description are required")
		return
	}

	project, err := h.Service.Create(r.Context(), userID, req.Name, req.Description, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
			return
		}
		logging.Logger.Errorf("Failed to create project: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.Service.Update(r.Context(), userID, mux.Vars(r)["id"], patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to update this project")
		case errors.Is(err, services.ErrInvalidStatus):
			writeMessage(w, http.StatusBadRequest, "Invalid status value")
		default:
			logging.Logger.Errorf("Failed to update project: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to update project")
		}
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "No token, authorization denied")
		return
	}

	if err := h.Service.Delete(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			writeMessage(w, http.StatusNotFound, "Project not found")
		case errors.Is(err, services.ErrForbidden):
			writeMessage(w, http.StatusForbidden, "Not authorized to delete this project")
		default:
			logging.Logger.Errorf("Failed to delete project: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Failed to delete project")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Project deleted successfully")
}
