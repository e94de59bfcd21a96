package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	// ErrNotReady marks an attempt to score a match that is not finished or a
	// question that has no correct answer yet. Bulk paths check and skip it;
	// direct calls surface it to the caller.
	ErrNotReady = errors.New("not ready for scoring")
	// ErrStorageConflict marks a lost race on an aggregation key. Callers
	// should retry with backoff rather than fail the request.
	ErrStorageConflict       = errors.New("storage conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrPartialBatchFailure marks a bulk recalculation where some units
	// failed. The returned summary still reports the completed units.
	ErrPartialBatchFailure = errors.New("partial batch failure")
)
