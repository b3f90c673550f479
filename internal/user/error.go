package user

import "errors"

var (
	// -- Validation & Input --
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrInvalidRole      = errors.New("invalid role")

	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	// -- Resource State --
	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
