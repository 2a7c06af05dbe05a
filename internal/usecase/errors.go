package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPlan means the declared build-step graph is inconsistent: a
	// step reads a table no earlier step produces and no staging load
	// provides.
	ErrInvalidPlan = errors.New("invalid build plan")
	// ErrBuildStepFailed wraps a fatal curated build-step failure; the
	// remaining steps were skipped and the curated schema must not be
	// presented as complete.
	ErrBuildStepFailed = errors.New("build step failed")
)
