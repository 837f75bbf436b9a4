package git

import (
	"context"
)

// MockService is a test double for git.Service.
type MockService struct {
	Dir    string
	DirErr error
}

// GitDir returns the configured directory.
func (m *MockService) GitDir(_ context.Context) (string, error) {
	return m.Dir, m.DirErr
}
