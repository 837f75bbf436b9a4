package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guet-cli/guet/internal/engine/git"
	"github.com/guet-cli/guet/internal/engine/hooks"
	"github.com/guet-cli/guet/internal/platform/logger"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Remove guet's hooks from the repository",
	Long: `Remove every hook guet wrote, standard or alongside.
Hooks guet did not write are left in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("stop started")

		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		if err := stopGuet(ctx, git.NewExecService(projectDir), hooks.OSFileAccess{}, cmd.OutOrStdout()); err != nil {
			return err
		}

		log.Info("stop completed")
		return nil
	},
}

// stopGuet removes guet-owned hooks with injected dependencies for testability.
func stopGuet(ctx context.Context, gitSvc git.Service, fa hooks.FileAccess, out io.Writer) error {
	gitDir, err := gitSvc.GitDir(ctx)
	if err != nil {
		return err
	}

	set, err := hooks.Load(ctx, fa, gitDir)
	if err != nil {
		return err
	}

	removed, err := set.RemoveHooks(ctx)
	if len(removed) > 0 {
		fmt.Fprintf(out, "Removed %s.\n", strings.Join(removed, ", "))
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Fprintln(out, "No guet hooks to remove.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
