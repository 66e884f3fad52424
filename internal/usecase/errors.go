package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrResumeNotFound     = errors.New("resume not found")
	ErrForbidden          = errors.New("forbidden")
)
