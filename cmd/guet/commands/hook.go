package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/guet-cli/guet/internal/engine/hooks"
	"github.com/guet-cli/guet/internal/platform/logger"
	"github.com/spf13/cobra"
)

// ErrUnknownHook is returned when the hook command is invoked from a file
// that is not one of guet's hook slots.
var ErrUnknownHook = errors.New("unknown hook")

// hookCmd is what the installed scripts exec on every commit. It must not
// fail because of a settings mistake, or git would abort the commit.
var hookCmd = &cobra.Command{
	Use:         "hook <hook-path> [args...]",
	Short:       "Entry point called by installed hook scripts",
	Hidden:      true,
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationLenientSettings: "true"},
	// Git passes arbitrary arguments (e.g. the commit message file) through.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatchHook(cmd.Context(), args[0], args[1:])
	},
}

// dispatchHook resolves which hook invoked guet from the script's own path.
// It is only the dispatch point: no per-hook work runs behind it yet, so a
// known hook always succeeds and an unknown one returns ErrUnknownHook.
func dispatchHook(ctx context.Context, hookPath string, args []string) error {
	name := filepath.Base(hookPath)
	kind, ok := hooks.KindOf(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHook, name)
	}

	logger.FromContext(ctx).Debug("hook dispatched",
		"kind", kind,
		"alongside", hooks.IsAlongside(name),
		"args", args,
	)
	return nil
}

func init() {
	rootCmd.AddCommand(hookCmd)
}
