package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. They keep
// the services free of transport concerns.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAuthorized      = errors.New("user not authorized")
)
