package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/atomicwriter"
)

// ErrHookNotFound is returned by FileAccess when no file exists at a path.
var ErrHookNotFound = fmt.Errorf("hook file not found: %w", fs.ErrNotExist)

const (
	// executeBits are the owner, group and other execute permission bits.
	executeBits fs.FileMode = 0o111
	// backupModeBits are the mode bits a Backup keeps.
	backupModeBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky
)

// Backup is the on-disk state of one path, recorded so it can be put back
// exactly as it was.
type Backup struct {
	Path   string
	Exists bool
	// Target is the link target when Path is a symbolic link.
	Target string
	Data   []byte
	Mode   fs.FileMode
}

// FileAccess abstracts the file operations needed to manage hook scripts.
type FileAccess interface {
	// ReadLines returns the file content split into lines.
	// Returns ErrHookNotFound if the file does not exist.
	ReadLines(path string) ([]string, error)
	// WriteLines atomically replaces the file content with lines,
	// leaving the file with exactly the given permission bits.
	WriteLines(path string, lines []string, perm fs.FileMode) error
	// Mode returns the permission bits of the file.
	// Returns ErrHookNotFound if the file does not exist.
	Mode(path string) (fs.FileMode, error)
	// Chmod sets the permission bits of the file.
	Chmod(path string, mode fs.FileMode) error
	// Remove deletes the file.
	Remove(path string) error
	// Backup records the state of path without following a symbolic link.
	// A missing path is recorded with Exists false.
	Backup(path string) (Backup, error)
	// Restore puts the path back into the state recorded by Backup.
	Restore(b Backup) error
}

// SetExecutable adds the execute bits to the file's current permissions.
// Existing read and write bits are kept.
func SetExecutable(fa FileAccess, path string) error {
	mode, err := fa.Mode(path)
	if err != nil {
		return fmt.Errorf("reading mode of %s: %w", path, err)
	}
	if mode&executeBits == executeBits {
		return nil
	}
	if err := fa.Chmod(path, mode|executeBits); err != nil {
		return fmt.Errorf("making %s executable: %w", path, err)
	}
	return nil
}

// OSFileAccess implements FileAccess on the local file system.
type OSFileAccess struct{}

// ReadLines reads the named file and splits it on newlines.
func (OSFileAccess) ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from the git dir and a fixed slot name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrHookNotFound, path)
		}
		return nil, err
	}
	return splitLines(string(data)), nil
}

// WriteLines writes lines through a temporary file that is renamed over path.
// When path is a symbolic link the link itself is replaced; the file it
// points to is not modified.
func (OSFileAccess) WriteLines(path string, lines []string, perm fs.FileMode) error {
	data := []byte(joinLines(lines))
	if !isSymlink(path) {
		return atomicwriter.WriteFile(path, data, perm)
	}
	return replaceSymlink(path, func(tmp string) error {
		return atomicwriter.WriteFile(tmp, data, perm)
	})
}

// Mode returns the permission bits of the named file.
func (OSFileAccess) Mode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrHookNotFound, path)
		}
		return 0, err
	}
	return info.Mode().Perm(), nil
}

// Chmod sets the permission bits of the named file.
func (OSFileAccess) Chmod(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

// Remove deletes the named file.
func (OSFileAccess) Remove(path string) error {
	return os.Remove(path)
}

// Backup records the content and full mode of a regular file, or the target
// of a symbolic link.
func (OSFileAccess) Backup(path string) (Backup, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Backup{Path: path}, nil
	}
	if err != nil {
		return Backup{}, err
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := os.Readlink(path)
		if err != nil {
			return Backup{}, err
		}
		return Backup{Path: path, Exists: true, Target: target}, nil
	case info.Mode().IsRegular():
		data, err := os.ReadFile(path) // #nosec G304 -- path is built from the git dir and a fixed slot name
		if err != nil {
			return Backup{}, err
		}
		return Backup{Path: path, Exists: true, Data: data, Mode: info.Mode() & backupModeBits}, nil
	default:
		return Backup{}, fmt.Errorf("%s is not a regular file (mode %v)", path, info.Mode())
	}
}

// Restore rewrites the recorded bytes and mode, recreates a recorded link,
// or removes a path that did not exist.
func (OSFileAccess) Restore(b Backup) error {
	switch {
	case !b.Exists:
		if err := os.Remove(b.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	case b.Target != "":
		return replaceSymlink(b.Path, func(tmp string) error {
			return os.Symlink(b.Target, tmp)
		})
	}

	if isSymlink(b.Path) {
		if err := os.Remove(b.Path); err != nil {
			return err
		}
	}
	if err := atomicwriter.WriteFile(b.Path, b.Data, b.Mode.Perm()); err != nil {
		return err
	}
	if b.Mode&^fs.ModePerm != 0 {
		return os.Chmod(b.Path, b.Mode)
	}
	return nil
}

func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// replaceSymlink creates a sibling of path with create and renames it over
// path, which replaces a link rather than following it.
func replaceSymlink(path string, create func(tmp string) error) error {
	tmp := filepath.Join(filepath.Dir(path), ".tmp-"+filepath.Base(path)+"-guet")
	if err := os.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := create(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
