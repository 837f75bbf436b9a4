// Package commands implements the CLI commands for guet.
package commands

import (
	"context"
	"fmt"

	"github.com/guet-cli/guet/internal/engine/config"
	"github.com/guet-cli/guet/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Global flag values accessible to all commands.
var (
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

type settingsKey struct{}

// annotationLenientSettings marks commands that fall back to default
// settings instead of failing when the settings cannot be loaded.
const annotationLenientSettings = "guet/lenient-settings"

// rootCmd is the base command for the guet CLI.
var rootCmd = &cobra.Command{
	Use:   "guet",
	Short: "Manage the commit hooks guet runs in",
	Long: `Guet installs itself into a repository's pre-commit, post-commit and
commit-msg hooks. When the repository already has its own hooks, guet can
replace them or install its hooks alongside them as pre-commit-guet,
post-commit-guet and commit-msg-guet, leaving the existing scripts untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		settings, settingsErr := loadSettings(ctx)
		if settingsErr != nil {
			if cmd.Annotations[annotationLenientSettings] != "true" {
				return fmt.Errorf("loading settings: %w", settingsErr)
			}
			settings = config.Defaults()
		}

		l := logger.New(cmd.ErrOrStderr(), logger.Options{
			Level:   settings.Level(),
			Verbose: flagVerbose,
			JSON:    flagJSON,
		})
		if settingsErr != nil {
			l.Warn("ignoring invalid settings, using defaults", "error", settingsErr)
		}
		ctx = logger.WithContext(ctx, l)
		ctx = context.WithValue(ctx, settingsKey{}, settings)
		cmd.SetContext(ctx)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a settings file (default ~/.config/guet/config.yaml)")
}

// loadSettings is a variable for testability.
var loadSettings = func(ctx context.Context) (*config.Settings, error) {
	if flagConfig != "" {
		return config.LoadFrom(ctx, flagConfig)
	}
	return config.Load(ctx)
}

// settingsFromContext returns the settings loaded by the root command,
// or the prompt strategy defaults when none were loaded.
func settingsFromContext(ctx context.Context) *config.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*config.Settings); ok {
		return s
	}
	return &config.Settings{Strategy: config.StrategyPrompt}
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
