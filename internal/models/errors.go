package models

import "errors"

// Session errors
var (
	ErrSessionExpired = errors.New("session expired")
	ErrSessionInvalid = errors.New("invalid session")
)

// Authorization errors
var (
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrInsufficientClearance = errors.New("insufficient clearance")
)

// Credential errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Record errors
var (
	ErrAgentNotFound  = errors.New("agent not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrIntelNotFound  = errors.New("intel not found")
)
