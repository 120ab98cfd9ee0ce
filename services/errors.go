package services

import "errors"

// Sentinel errors the handlers map onto the HTTP surface. Anything else
// coming out of a service is treated as a storage failure.
var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrForbidden          = errors.New("not authorized")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrInvalidPriority    = errors.New("invalid priority value")
)
