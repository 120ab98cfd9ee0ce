package client

import (
	"context"
	"fmt"

	"github.com/nurhusenm/Devtracker/models"
)

// taskAPI is the slice of the API the board needs.
type taskAPI interface {
	TasksByProject(ctx context.Context, projectID string) ([]models.Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Board is the in-memory view model for one project's Kanban board. It holds
// the full task list and re-derives the three status columns on demand.
// Status changes are applied optimistically and rolled back if the server
// rejects them, so the board never stays out of sync silently.
type Board struct {
	api       taskAPI
	projectID string
	tasks     []models.Task
}

func NewBoard(api taskAPI, projectID string) *Board {
	return &Board{api: api, projectID: projectID}
}

// Load fetches the project's tasks, replacing whatever is in memory.
func (b *Board) Load(ctx context.Context) error {
	tasks, err := b.api.TasksByProject(ctx, b.projectID)
	if err != nil {
		return err
	}
	b.tasks = tasks
	return nil
}

func (b *Board) Tasks() []models.Task {
	return b.tasks
}

// Columns partitions the tasks by status, preserving fetch order within each
// column.
type Columns struct {
	Todo       []models.Task
	InProgress []models.Task
	Done       []models.Task
}

func (b *Board) Columns() Columns {
	var cols Columns
	for _, t := range b.tasks {
		switch t.Status {
		case models.StatusInProgress:
			cols.InProgress = append(cols.InProgress, t)
		case models.StatusDone:
			cols.Done = append(cols.Done, t)
		default:
			cols.Todo = append(cols.Todo, t)
		}
	}
	return cols
}

// ChangeStatus moves a task to a new column: the in-memory copy changes
// first, then the server is asked to persist. On failure the optimistic
// change is reverted and the error surfaced.
func (b *Board) ChangeStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	idx := b.indexOf(taskID)
	if idx < 0 {
		return fmt.Errorf("task %s is not on this board", taskID)
	}

	previous := b.tasks[idx].Status
	b.tasks[idx].Status = status

	updated, err := b.api.UpdateTask(ctx, taskID, models.TaskPatch{Status: &status})
	if err != nil {
		b.revertStatus(taskID, previous)
		return err
	}

	// Last write wins: the server's copy replaces whatever is in memory now.
	if idx := b.indexOf(taskID); idx >= 0 {
		b.tasks[idx] = *updated
	}
	return nil
}

// revertStatus undoes an optimistic change. The task is looked up again
// because the list can have shifted while the request was in flight.
func (b *Board) revertStatus(taskID string, status models.TaskStatus) {
	if idx := b.indexOf(taskID); idx >= 0 {
		b.tasks[idx].Status = status
	}
}

// AddTask creates a task in the todo column. The server-assigned record
// (id, timestamp) is what gets appended; nothing changes on failure.
func (b *Board) AddTask(ctx context.Context, title, description string) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("task title is required")
	}

	task, err := b.api.CreateTask(ctx, CreateTaskRequest{
		Title:       title,
		Description: description,
		Status:      models.StatusTodo,
		ProjectID:   b.projectID,
	})
	if err != nil {
		return nil, err
	}

	b.tasks = append(b.tasks, *task)
	return task, nil
}

// DeleteTask removes the task locally only after the server confirms.
func (b *Board) DeleteTask(ctx context.Context, taskID string) error {
	if err := b.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	if idx := b.indexOf(taskID); idx >= 0 {
		b.tasks = append(b.tasks[:idx], b.tasks[idx+1:]...)
	}
	return nil
}

// DropOn maps a drag-and-drop target to a status change. A drop with no
// resolvable column, onto an unknown task, or onto the task's current column
// is a no-op.
func (b *Board) DropOn(ctx context.Context, taskID, columnID string) error {
	status := models.TaskStatus(columnID)
	if !status.Valid() {
		return nil
	}

	idx := b.indexOf(taskID)
	if idx < 0 {
		return nil
	}
	if b.tasks[idx].Status == status {
		return nil
	}

	return b.ChangeStatus(ctx, taskID, status)
}

func (b *Board) indexOf(taskID string) int {
	for i, t := range b.tasks {
		if t.ID.Hex() == taskID {
			return i
		}
	}
	return -1
}
