package hooks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/guet-cli/guet/internal/platform/logger"
)

// State describes what occupies a hook slot.
type State string

const (
	StateAbsent  State = "absent"
	StateGuet    State = "guet"
	StateForeign State = "foreign"
)

// SlotStatus is the state of one slot in a Set.
type SlotStatus struct {
	Name      string
	Kind      Kind
	Alongside bool
	State     State
}

// Set tracks the guet-relevant hooks of one git directory. Only slots with a
// file on disk are tracked.
type Set struct {
	gitDir string
	fa     FileAccess
	hooks  []*Hook
}

// Load reads every canonical slot under gitDir/hooks. Missing slots are
// skipped; any other read failure is returned.
func Load(ctx context.Context, fa FileAccess, gitDir string) (*Set, error) {
	log := logger.FromContext(ctx)
	s := &Set{gitDir: gitDir, fa: fa}

	for _, name := range allSlotNames() {
		h, err := NewHook(fa, s.path(name), false)
		if err != nil {
			if errors.Is(err, ErrHookAbsent) {
				continue
			}
			return nil, fmt.Errorf("loading hooks: %w", err)
		}
		log.Debug("found hook", "name", name, "guet", h.IsGuetHook())
		s.hooks = append(s.hooks, h)
	}

	return s, nil
}

// GitDir returns the git directory the set was loaded from.
func (s *Set) GitDir() string {
	return s.gitDir
}

// Hooks returns the tracked hooks in slot order.
func (s *Set) Hooks() []*Hook {
	return slices.Clone(s.hooks)
}

// HooksPresent reports whether guet is fully configured: either all three
// standard slots hold guet hooks, or all three alongside slots exist.
// Alongside content is not checked.
func (s *Set) HooksPresent() bool {
	tracked := s.byName()

	standard := true
	for _, name := range slotNames(false) {
		h, ok := tracked[name]
		if !ok || !h.IsGuetHook() {
			standard = false
			break
		}
	}
	if standard {
		return true
	}

	for _, name := range slotNames(true) {
		if _, ok := tracked[name]; !ok {
			return false
		}
	}
	return true
}

// NonGuetHooksPresent reports whether any tracked hook has foreign content.
func (s *Set) NonGuetHooksPresent() bool {
	for _, h := range s.hooks {
		if !h.IsGuetHook() {
			return true
		}
	}
	return false
}

// Status returns the state of all six slots in slot order.
func (s *Set) Status() []SlotStatus {
	tracked := s.byName()
	out := make([]SlotStatus, 0, 2*len(slots))
	for _, name := range allSlotNames() {
		kind, _ := KindOf(name)
		st := SlotStatus{Name: name, Kind: kind, Alongside: IsAlongside(name), State: StateAbsent}
		if h, ok := tracked[name]; ok {
			st.State = StateForeign
			if h.IsGuetHook() {
				st.State = StateGuet
			}
		}
		out = append(out, st)
	}
	return out
}

// CreateHooks installs the guet template into the three standard slots, or
// into the three alongside slots when alongside is true.
//
// The three writes succeed or fail together: if any write fails, the slots
// already written are restored from a Backup (same bytes and mode, or the
// same symbolic link, or removed if they did not exist) and the tracked hooks
// are left unchanged. A slot holding a symbolic link is replaced by a regular
// file; the script it pointed to is not modified.
// On success the tracked hooks of the requested variant become the new
// hooks; tracked hooks of the other variant are kept.
func (s *Set) CreateHooks(ctx context.Context, alongside bool) error {
	log := logger.FromContext(ctx)
	names := slotNames(alongside)

	created := make([]*Hook, 0, len(names))
	backups := make([]Backup, 0, len(names))
	for _, name := range names {
		h, err := NewHook(s.fa, s.path(name), true)
		if err != nil {
			return fmt.Errorf("preparing %s hook: %w", name, err)
		}
		b, err := s.fa.Backup(h.path)
		if err != nil {
			return fmt.Errorf("preparing %s hook: %w", name, err)
		}
		created = append(created, h)
		backups = append(backups, b)
	}

	for i, h := range created {
		if err := h.Save(); err != nil {
			saveErr := fmt.Errorf("installing %s hook: %w", h.Name(), err)
			log.Warn("hook install failed, rolling back", "hook", h.Name(), "error", err)
			return errors.Join(saveErr, s.rollback(backups[:i]))
		}
		log.Debug("hook written", "path", h.path)
	}

	kept := slices.DeleteFunc(slices.Clone(s.hooks), func(h *Hook) bool {
		return slices.Contains(names, h.Name())
	})
	s.hooks = append(kept, created...)
	s.sort()

	log.Info("hooks installed", "alongside", alongside, "dir", s.hooksDir())
	return nil
}

// EnsureExecutable adds the execute bits to every tracked guet hook.
func (s *Set) EnsureExecutable(ctx context.Context) error {
	for _, h := range s.hooks {
		if !h.IsGuetHook() {
			continue
		}
		if err := SetExecutable(s.fa, h.path); err != nil {
			return err
		}
		logger.FromContext(ctx).Debug("hook is executable", "path", h.path)
	}
	return nil
}

// RemoveHooks deletes every tracked guet hook and returns their names.
// Foreign hooks are never removed.
func (s *Set) RemoveHooks(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx)

	var removed []string
	remaining := make([]*Hook, 0, len(s.hooks))
	for i, h := range s.hooks {
		if !h.IsGuetHook() {
			remaining = append(remaining, h)
			continue
		}
		if err := s.fa.Remove(h.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.hooks = append(remaining, s.hooks[i:]...)
			return removed, fmt.Errorf("removing hook %s: %w", h.Name(), err)
		}
		log.Info("hook removed", "path", h.path)
		removed = append(removed, h.Name())
	}
	s.hooks = remaining

	return removed, nil
}

// rollback restores backups in reverse order, collecting every failure.
func (s *Set) rollback(backups []Backup) error {
	var errs []error
	for i := len(backups) - 1; i >= 0; i-- {
		if err := s.fa.Restore(backups[i]); err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", backups[i].Path, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Set) hooksDir() string {
	return filepath.Join(s.gitDir, "hooks")
}

func (s *Set) path(name string) string {
	return filepath.Join(s.hooksDir(), name)
}

func (s *Set) byName() map[string]*Hook {
	m := make(map[string]*Hook, len(s.hooks))
	for _, h := range s.hooks {
		m[h.Name()] = h
	}
	return m
}

// sort orders tracked hooks standard trio first, then alongside trio.
func (s *Set) sort() {
	order := allSlotNames()
	slices.SortStableFunc(s.hooks, func(a, b *Hook) int {
		return slices.Index(order, a.Name()) - slices.Index(order, b.Name())
	})
}
