package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Access errors
var (
	ErrGrantNotFound      = errors.New("membership grant not found")
	ErrEnrollmentNotFound = errors.New("course enrollment not found")
	ErrGrantNotLocked     = errors.New("grant is not locked")
)

// Commission errors
var (
	ErrRateNotFound      = errors.New("commission rate not found")
	ErrRateAlreadyExists = errors.New("commission rate already exists for scope")
	ErrInvalidScope      = errors.New("invalid commission scope")
	ErrInvalidRateType   = errors.New("invalid rate type")
	// ErrNotConfigured means even the platform default is missing.
	// This cannot happen in a correctly initialized system and is fatal.
	ErrNotConfigured = errors.New("no commission rate configured and no platform default")
)
