package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nurhusenm/Devtracker/logging"
	"github.com/nurhusenm/Devtracker/models"
	"github.com/nurhusenm/Devtracker/repositories"
	"github.com/nurhusenm/Devtracker/utils"
)

// RoleDeveloper is the only role the service issues today.
const RoleDeveloper = "developer"

type UserService struct {
	Users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{Users: users}
}

// Register stores a new user with a bcrypt hash of the password. The raw
// password never reaches the database.
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	_, err := s.Users.FindByEmail(ctx, email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  hashed,
		Role:      RoleDeveloper,
		CreatedAt: time.Now(),
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		return err
	}

	logging.Logger.Infof("Registered user %s", user.Email)
	return nil
}

// Login verifies the password against the stored hash and issues an identity
// token. A missing user and a wrong password both come back as
// ErrInvalidCredentials so callers cannot probe which emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !utils.CheckPassword(user.Password, password) {
		return "", "", ErrInvalidCredentials
	}

	token, err = utils.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, user.ID.Hex(), nil
}
