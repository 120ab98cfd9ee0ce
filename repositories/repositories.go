// Package repositories holds the persistence accessors for users, projects
// and tasks. Every call round-trips to MongoDB; there is no caching layer.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nurhusenm/Devtracker/models"
)

// ErrNotFound is returned when an id or filter resolves to no document.
var ErrNotFound = errors.New("document not found")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

type ProjectRepository interface {
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TaskRepository interface {
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
