package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/repositories"
)

type TaskService struct {
	Tasks    repositories.TaskRepository
	Projects repositories.ProjectRepository
}

func NewTaskService(tasks repositories.TaskRepository, projects repositories.ProjectRepository) *TaskService {
	return &TaskService{Tasks: tasks, Projects: projects}
}

// ListByProject returns a project's board. Reads carry the same ownership
// check as mutations, so one user cannot browse another's board.
func (s *TaskService) ListByProject(ctx context.Context, callerID, projectID string) ([]models.Task, error) {
	project, err := s.loadParent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Owner.Hex() != callerID {
		return nil, ErrForbidden
	}
	return s.Tasks.FindByProject(ctx, project.ID)
}

type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	ProjectID   string
	DueDate     *time.Time
}

// Create requires the referenced project to exist and to belong to the
// caller. The project reference is fixed for the task's lifetime.
func (s *TaskService) Create(ctx context.Context, callerID string, in CreateTaskInput) (*models.Task, error) {
	project, err := s.loadParent(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Owner.Hex() != callerID {
		return nil, ErrForbidden
	}

	if in.Status == "" {
		in.Status = models.StatusTodo
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		ProjectID:   project.ID,
		CreatedAt:   time.Now(),
		DueDate:     in.DueDate,
	}
	if err := s.Tasks.Insert(ctx, task); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Created task %s in project %s", task.ID.Hex(), project.ID.Hex())
	return task, nil
}

// Update applies a partial patch to a task. The patch type has no project
// field, so a projectId in the request body can never move the task.
func (s *TaskService) Update(ctx context.Context, callerID, taskID string, patch models.TaskPatch) (*models.Task, error) {
	task, err := s.loadOwned(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.Tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, callerID, taskID string) error {
	task, err := s.loadOwned(ctx, callerID, taskID)
	if err != nil {
		return err
	}

	if err := s.Tasks.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	logging.Logger.Infof("Deleted task %s", task.ID.Hex())
	return nil
}

func (s *TaskService) loadParent(ctx context.Context, projectID string) (*models.Project, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	project, err := s.Projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// loadOwned resolves a task and verifies the caller owns its parent project.
func (s *TaskService) loadOwned(ctx context.Context, callerID, taskID string) (*models.Task, error) {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, ErrTaskNotFound
	}

	task, err := s.Tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	project, err := s.Projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.Owner.Hex() != callerID {
		return nil, ErrForbidden
	}
	return task, nil
}
