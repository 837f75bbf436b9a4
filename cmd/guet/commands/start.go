package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guet-cli/guet/internal/engine/config"
	"github.com/guet-cli/guet/internal/engine/git"
	"github.com/guet-cli/guet/internal/engine/hooks"
	"github.com/guet-cli/guet/internal/platform/logger"
	"github.com/guet-cli/guet/internal/ui/prompt"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when foreign hooks require a choice but
// there is no terminal to ask on.
var ErrNotInteractive = errors.New("existing hooks found and stdin is not a terminal; rerun with --overwrite or --alongside")

var (
	flagOverwrite bool
	flagAlongside bool
)

// startDeps holds the collaborators of the start workflow.
type startDeps struct {
	git         git.Service
	fa          hooks.FileAccess
	interactive bool
	ask         func(question string) (prompt.Choice, error)
	out         io.Writer
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start guet usage in the repository at current directory",
	Long: `Install guet's hooks into the current repository.

Without flags, guet installs into the standard hook slots unless the
repository already has hooks of its own, in which case it asks whether to
overwrite them or install alongside them. --overwrite and --alongside skip
the question.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		log.Info("start requested")

		projectDir, err := getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		deps := startDeps{
			git:         git.NewExecService(projectDir),
			fa:          hooks.OSFileAccess{},
			interactive: isTerminal(os.Stdin),
			ask: func(question string) (prompt.Choice, error) {
				return prompt.ChooseStrategy(question, cmd.InOrStdin(), cmd.ErrOrStderr())
			},
			out: cmd.OutOrStdout(),
		}
		return startGuet(ctx, resolveStrategy(settingsFromContext(ctx)), explicitStrategy(), deps)
	},
}

// explicitStrategy reports whether a strategy flag was given.
func explicitStrategy() bool {
	return flagOverwrite || flagAlongside
}

// resolveStrategy picks the strategy: flags first, then settings.
func resolveStrategy(settings *config.Settings) config.Strategy {
	switch {
	case flagOverwrite:
		return config.StrategyOverwrite
	case flagAlongside:
		return config.StrategyAlongside
	case settings.Strategy != "":
		return settings.Strategy
	default:
		return config.StrategyPrompt
	}
}

// startGuet performs the start workflow with injected dependencies for testability.
func startGuet(ctx context.Context, strategy config.Strategy, explicit bool, deps startDeps) error {
	log := logger.FromContext(ctx)

	gitDir, err := deps.git.GitDir(ctx)
	if err != nil {
		return err
	}

	set, err := hooks.Load(ctx, deps.fa, gitDir)
	if err != nil {
		return err
	}

	if !explicit && set.HooksPresent() {
		if err := set.EnsureExecutable(ctx); err != nil {
			return err
		}
		fmt.Fprintln(deps.out, "guet is already started in this repository.")
		return nil
	}

	alongside := false
	switch strategy {
	case config.StrategyOverwrite:
	case config.StrategyAlongside:
		alongside = true
	default:
		if set.NonGuetHooksPresent() {
			if !deps.interactive {
				return ErrNotInteractive
			}
			choice, err := deps.ask(foreignHooksQuestion(set))
			if err != nil {
				return fmt.Errorf("asking for install strategy: %w", err)
			}
			log.Debug("install strategy chosen", "choice", choice)
			switch choice {
			case prompt.ChoiceOverwrite:
			case prompt.ChoiceAlongside:
				alongside = true
			default:
				fmt.Fprintln(deps.out, "Cancelled, no hooks were changed.")
				return nil
			}
		}
	}

	if err := set.CreateHooks(ctx, alongside); err != nil {
		return err
	}

	if alongside {
		fmt.Fprintf(deps.out, "Installed guet hooks alongside your existing hooks in %s.\n", filepath.Join(gitDir, "hooks"))
		fmt.Fprintln(deps.out, "Call pre-commit-guet, post-commit-guet and commit-msg-guet from your own hooks to run guet.")
		return nil
	}
	fmt.Fprintf(deps.out, "Installed guet hooks in %s.\n", filepath.Join(gitDir, "hooks"))
	return nil
}

func foreignHooksQuestion(set *hooks.Set) string {
	var names []string
	for _, h := range set.Hooks() {
		if !h.IsGuetHook() {
			names = append(names, h.Name())
		}
	}
	return fmt.Sprintf("This repository already has hooks guet did not write: %s.", strings.Join(names, ", "))
}

// getwd is a variable for testability (defaults to os.Getwd).
var getwd = os.Getwd

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	startCmd.Flags().BoolVarP(&flagOverwrite, "overwrite", "o", false, "Replace existing hooks with guet's hooks")
	startCmd.Flags().BoolVarP(&flagAlongside, "alongside", "a", false, "Install guet's hooks next to existing hooks as *-guet")
	startCmd.MarkFlagsMutuallyExclusive("overwrite", "alongside")
	rootCmd.AddCommand(startCmd)
}
