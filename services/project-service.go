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

type ProjectService struct {
	Projects repositories.ProjectRepository
}

func NewProjectService(projects repositories.ProjectRepository) *ProjectService {
	return &ProjectService{Projects: projects}
}

// ListByOwner returns only the caller's projects.
func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]models.Project, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrForbidden
	}
	return s.Projects.FindByOwner(ctx, owner)
}

func (s *ProjectService) Create(ctx context.Context, ownerID, name, description string, status models.ProjectStatus) (*models.Project, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrForbidden
	}

	if status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		Status:      status,
		Owner:       owner,
		CreatedAt:   time.Now(),
	}
	if err := s.Projects.Insert(ctx, project); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Created project %s for owner %s", project.ID.Hex(), ownerID)
	return project, nil
}

// Update loads the project, checks ownership, then overwrites only the fields
// present in the patch. Absent fields keep their stored value.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID string, patch models.ProjectPatch) (*models.Project, error) {
	project, err := s.loadOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		project.Name = *patch.Name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		project.Status = *patch.Status
	}

	if err := s.Projects.Update(ctx, project); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID string) error {
	project, err := s.loadOwned(ctx, ownerID, projectID)
	if err != nil {
		return err
	}

	if err := s.Projects.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	logging.Logger.Infof("Deleted project %s", project.ID.Hex())
	return nil
}

// loadOwned resolves a project and verifies the caller owns it. Not-found is
// reported before forbidden so a missing id never reads as someone else's.
func (s *ProjectService) loadOwned(ctx context.Context, ownerID, projectID string) (*models.Project, error) {
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

	if project.Owner.Hex() != ownerID {
		return nil, ErrForbidden
	}
	return project, nil
}
