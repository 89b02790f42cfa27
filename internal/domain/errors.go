package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures shared by the content loaders,
// the workbench reducer and the session service.
// -----------------------------------------------------------------------------

// Content errors
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrTutorialNotFound = errors.New("tutorial not found")
)

// Workbench errors
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownView   = errors.New("unknown view")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
