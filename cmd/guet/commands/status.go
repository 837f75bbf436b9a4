package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/guet-cli/guet/internal/engine/formatter"
	"github.com/guet-cli/guet/internal/engine/git"
	"github.com/guet-cli/guet/internal/engine/hooks"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which hooks are installed",
	Long: `List every hook slot guet manages and whether it is absent, holds a guet
hook, or holds a hook guet did not write. With --json the report is printed
as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		var f formatter.Formatter = formatter.NewCLIFormatter(isTerminal(os.Stdout))
		if flagJSON {
			f = formatter.NewJSONFormatter()
		}
		return showStatus(cmd.Context(), git.NewExecService(projectDir), hooks.OSFileAccess{}, f, cmd.OutOrStdout())
	},
}

// showStatus prints the state of each slot with injected dependencies for testability.
func showStatus(ctx context.Context, gitSvc git.Service, fa hooks.FileAccess, f formatter.Formatter, out io.Writer) error {
	gitDir, err := gitSvc.GitDir(ctx)
	if err != nil {
		return err
	}

	set, err := hooks.Load(ctx, fa, gitDir)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, f.Format(formatter.NewStatusReport(set)))
	return err
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
