package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role, use 'admin', 'staff' or 'auditor'")
	ErrEmptyUserFields    = errors.New("username and full name cannot be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked after repeated failed logins")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrMFARequired        = errors.New("multi-factor authentication code required")
	ErrInvalidMFACode     = errors.New("invalid multi-factor authentication code")
	ErrMFAAlreadyEnabled  = errors.New("multi-factor authentication already enabled")
	ErrMFANotConfigured   = errors.New("multi-factor authentication not set up")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrChecklistItem      = errors.New("unknown checklist item")
	ErrCertNotFound       = errors.New("certificate not found")
	ErrCertRevoked        = errors.New("certificate revoked")
	ErrCertExpired        = errors.New("certificate expired")
	ErrQuizNotPassed      = errors.New("quiz score below pass threshold")
	ErrNoQuizAttempt      = errors.New("no quiz attempt on record")
)
