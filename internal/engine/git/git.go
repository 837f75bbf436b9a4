// Package git locates the repository guet installs hooks into.
package git

import (
	"context"
	"errors"
)

// ErrNotRepository is returned when the working directory is not inside a git repository.
var ErrNotRepository = errors.New("not a git repository (or any of the parent directories)")

// Service abstracts git queries for testability.
type Service interface {
	// GitDir returns the path of the repository's .git directory.
	GitDir(ctx context.Context) (string, error)
}
