package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
)

// mockFileAccess is an in-memory FileAccess for testing.
type mockFileAccess struct {
	files      map[string][]string
	modes      map[string]fs.FileMode
	readErrs   map[string]error
	writeErrs  map[string]error
	removeErrs map[string]error
	backupErrs map[string]error
	writes     []string
}

func newMockFileAccess() *mockFileAccess {
	return &mockFileAccess{
		files:      make(map[string][]string),
		modes:      make(map[string]fs.FileMode),
		readErrs:   make(map[string]error),
		writeErrs:  make(map[string]error),
		removeErrs: make(map[string]error),
		backupErrs: make(map[string]error),
	}
}

// put stores a file with the given mode.
func (m *mockFileAccess) put(path string, mode fs.FileMode, lines ...string) {
	m.files[path] = lines
	m.modes[path] = mode
}

func (m *mockFileAccess) ReadLines(path string) ([]string, error) {
	if err, ok := m.readErrs[path]; ok {
		return nil, err
	}
	lines, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHookNotFound, path)
	}
	return slices.Clone(lines), nil
}

func (m *mockFileAccess) WriteLines(path string, lines []string, perm fs.FileMode) error {
	if err, ok := m.writeErrs[path]; ok {
		return err
	}
	m.files[path] = slices.Clone(lines)
	m.modes[path] = perm
	m.writes = append(m.writes, path)
	return nil
}

func (m *mockFileAccess) Mode(path string) (fs.FileMode, error) {
	mode, ok := m.modes[path]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrHookNotFound, path)
	}
	return mode, nil
}

func (m *mockFileAccess) Chmod(path string, mode fs.FileMode) error {
	if _, ok := m.files[path]; !ok {
		return fs.ErrNotExist
	}
	m.modes[path] = mode
	return nil
}

func (m *mockFileAccess) Remove(path string) error {
	if err, ok := m.removeErrs[path]; ok {
		return err
	}
	if _, ok := m.files[path]; !ok {
		return fs.ErrNotExist
	}
	delete(m.files, path)
	delete(m.modes, path)
	return nil
}

func (m *mockFileAccess) Backup(path string) (Backup, error) {
	if err, ok := m.backupErrs[path]; ok {
		return Backup{}, err
	}
	lines, ok := m.files[path]
	if !ok {
		return Backup{Path: path}, nil
	}
	return Backup{Path: path, Exists: true, Data: []byte(joinLines(lines)), Mode: m.modes[path]}, nil
}

func (m *mockFileAccess) Restore(b Backup) error {
	if !b.Exists {
		if err := m.Remove(b.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	m.files[b.Path] = splitLines(string(b.Data))
	m.modes[b.Path] = b.Mode
	return nil
}
