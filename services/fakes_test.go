package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/repositories"
)

var errStorage = errors.New("storage unavailable")

type fakeUserRepo struct {
	users map[string]models.User // keyed by email
	fail  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if r.fail {
		return nil, errStorage
	}
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	if r.fail {
		return errStorage
	}
	user.ID = primitive.NewObjectID()
	r.users[user.Email] = *user
	return nil
}

type fakeProjectRepo struct {
	projects map[string]models.Project // keyed by id hex
	fail     bool
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]models.Project)}
}

func (r *fakeProjectRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Project, error) {
	if r.fail {
		return nil, errStorage
	}
	var out []models.Project
	for _, p := range r.projects {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	if r.fail {
		return nil, errStorage
	}
	project, ok := r.projects[id.Hex()]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &project, nil
}

func (r *fakeProjectRepo) Insert(_ context.Context, project *models.Project) error {
	if r.fail {
		return errStorage
	}
	project.ID = primitive.NewObjectID()
	r.projects[project.ID.Hex()] = *project
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	if r.fail {
		return errStorage
	}
	stored, ok := r.projects[project.ID.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Name = project.Name
	stored.Description = project.Description
	stored.Status = project.Status
	r.projects[project.ID.Hex()] = stored
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.fail {
		return errStorage
	}
	if _, ok := r.projects[id.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.projects, id.Hex())
	return nil
}

type fakeTaskRepo struct {
	tasks map[string]models.Task // keyed by id hex
	fail  bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]models.Task)}
}

func (r *fakeTaskRepo) FindByProject(_ context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	if r.fail {
		return nil, errStorage
	}
	var out []models.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	if r.fail {
		return nil, errStorage
	}
	task, ok := r.tasks[id.Hex()]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) Insert(_ context.Context, task *models.Task) error {
	if r.fail {
		return errStorage
	}
	task.ID = primitive.NewObjectID()
	r.tasks[task.ID.Hex()] = *task
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	if r.fail {
		return errStorage
	}
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

func (r *fakeTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.fail {
		return errStorage
	}
	if _, ok := r.tasks[id.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tasks, id.Hex())
	return nil
}
