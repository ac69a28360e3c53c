package models

import "github.com/pkg/errors"

// Sentinel errors of the core. Handlers map these to user-facing
// messages; anything else is treated as an internal failure.
var (
	ErrValidation            = errors.New("invalid input")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicateSlug         = errors.New("slug already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrUnauthenticated       = errors.New("not authenticated")
	ErrForbidden             = errors.New("not allowed")
	ErrNotFound              = errors.New("not found")
	ErrFileTooLarge          = errors.New("file too large")
	ErrUnsupportedType       = errors.New("unsupported file type")
)
