package service

import "errors"

// Sentinel errors the API layer maps to HTTP statuses. Anything else that
// escapes a service is treated as an internal failure: logged with detail,
// answered opaquely.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTaskNotFound       = errors.New("task not found")
	ErrBoardNotFound      = errors.New("board not found")
)
