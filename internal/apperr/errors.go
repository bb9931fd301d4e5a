// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	// ErrNotFound indicates a requested note does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownSurface indicates an operation targeted a surface that is
	// not registered with the report controller. Usage error, not data error.
	ErrUnknownSurface = errors.New("unknown report surface")

	// ErrNotInteractive indicates the activated offset lies outside every
	// interactive span of the surface.
	ErrNotInteractive = errors.New("position is not interactive")

	// ErrNoPayload indicates a stat button carried no snapshot to expand.
	ErrNoPayload = errors.New("no payload attached")

	// ErrTargetMissing indicates a file link points at a path that no
	// longer exists on disk.
	ErrTargetMissing = errors.New("target not available")
)
