package service

import "errors"

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
