package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/guet-cli/guet/internal/platform/logger"
)

// ExecService implements Service by running git commands via os/exec.
type ExecService struct {
	// WorkDir is the working directory for git commands.
	// If empty, the current directory is used.
	WorkDir string
}

// NewExecService creates a new ExecService with the given working directory.
func NewExecService(workDir string) *ExecService {
	return &ExecService{WorkDir: workDir}
}

// GitDir locates the repository's common .git directory by running
// `git rev-parse --git-common-dir`, so a linked worktree resolves to the
// directory whose hooks git actually runs. Relative results are resolved
// against WorkDir.
func (s *ExecService) GitDir(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("locating git directory", "workdir", s.WorkDir)

	out, err := s.runGit(ctx, "rev-parse", "--git-common-dir")
	if err != nil {
		if strings.Contains(err.Error(), "not a git repository") {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, s.WorkDir)
		}
		return "", fmt.Errorf("finding .git directory: %w", err)
	}

	gitDir := strings.TrimSpace(out)
	if !filepath.IsAbs(gitDir) && s.WorkDir != "" {
		gitDir = filepath.Join(s.WorkDir, gitDir)
	}

	if hooksPath := s.hooksPath(ctx); hooksPath != "" {
		log.Warn("core.hooksPath is set; git runs hooks from there, not from the git directory",
			"hooks_path", hooksPath, "git_dir", gitDir)
	}

	return gitDir, nil
}

// hooksPath returns core.hooksPath, or "" when it is unset.
func (s *ExecService) hooksPath(ctx context.Context) string {
	out, err := s.runGit(ctx, "config", "--get", "core.hooksPath")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// runGit executes a git command and returns the combined stdout.
func (s *ExecService) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 -- args are controlled by the application, not user input
	cmd.Dir = s.WorkDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w (stderr: %s)", strings.Join(args, " "), err, stderr.String())
	}

	return stdout.String(), nil
}
