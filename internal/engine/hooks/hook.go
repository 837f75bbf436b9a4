// Package hooks detects, classifies and installs the commit hooks guet manages.
package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
)

// ErrHookAbsent is returned by NewHook when no hook exists at the path
// and create mode was not requested.
var ErrHookAbsent = errors.New("hook absent")

// defaultPerm is the base mode of a newly written hook before execute bits.
const defaultPerm fs.FileMode = 0o644

// Template is the script guet installs. A hook is classified as a guet hook
// only when its content matches these lines exactly.
var Template = []string{
	"#!/bin/sh",
	`exec guet hook "$0" "$@"`,
}

// Hook is a single hook script on disk.
type Hook struct {
	path    string
	content []string
	fa      FileAccess
}

// NewHook reads the hook at path.
//
// Without create, a missing file yields ErrHookAbsent. With create, the
// content is set to Template whether or not the file exists; nothing is
// written until Save.
func NewHook(fa FileAccess, path string, create bool) (*Hook, error) {
	h := &Hook{path: path, fa: fa}

	lines, err := fa.ReadLines(path)
	switch {
	case err == nil:
		h.content = lines
	case errors.Is(err, ErrHookNotFound):
		if !create {
			return nil, fmt.Errorf("%w: %s", ErrHookAbsent, path)
		}
	default:
		return nil, fmt.Errorf("reading hook %s: %w", path, err)
	}

	if create {
		h.content = slices.Clone(Template)
	}
	return h, nil
}

// Path returns the hook's file path.
func (h *Hook) Path() string {
	return h.path
}

// Name returns the hook's file name, e.g. "pre-commit-guet".
func (h *Hook) Name() string {
	return filepath.Base(h.path)
}

// Content returns a copy of the hook's lines.
func (h *Hook) Content() []string {
	return slices.Clone(h.content)
}

// IsGuetHook reports whether the content is exactly the guet template.
func (h *Hook) IsGuetHook() bool {
	return slices.Equal(h.content, Template)
}

// Save writes the content to disk as an executable file. The previous
// permission bits are kept and the execute bits added in the same atomic
// replace, so the file is never observed without them.
func (h *Hook) Save() error {
	perm := defaultPerm
	mode, err := h.fa.Mode(h.path)
	switch {
	case err == nil:
		perm = mode
	case errors.Is(err, ErrHookNotFound):
	default:
		return fmt.Errorf("reading mode of %s: %w", h.path, err)
	}

	if err := h.fa.WriteLines(h.path, h.content, perm|executeBits); err != nil {
		return fmt.Errorf("writing hook %s: %w", h.path, err)
	}
	return nil
}
