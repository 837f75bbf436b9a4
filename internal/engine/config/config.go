// Package config loads guet's user settings.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/guet-cli/guet/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// Strategy selects how `guet start` installs hooks when no flag is given.
type Strategy string

const (
	// StrategyPrompt asks the user when foreign hooks are present.
	StrategyPrompt    Strategy = "prompt"
	StrategyOverwrite Strategy = "overwrite"
	StrategyAlongside Strategy = "alongside"
)

// Settings holds user-level preferences.
type Settings struct {
	Strategy Strategy `yaml:"strategy" toml:"strategy"`
	LogLevel string   `yaml:"log_level" toml:"log_level"`
}

// settingsFiles are tried in order under ~/.config/guet; the first one found wins.
var settingsFiles = []string{"config.yaml", "config.yml", "config.toml"}

// Loader handles loading settings from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads settings from ~/.config/guet. A missing file yields defaults.
// Environment variables override file values.
func (l *Loader) Load(ctx context.Context) (*Settings, error) {
	log := logger.FromContext(ctx)

	home, err := l.fs.UserHomeDir()
	if err != nil {
		log.Debug("cannot determine home directory, using default settings", "error", err)
		return l.finish(Defaults(), log)
	}

	dir := filepath.Join(home, ".config", "guet")
	for _, name := range settingsFiles {
		path := filepath.Join(dir, name)
		cfg, err := l.read(path)
		if err == nil {
			log.Debug("loaded settings", "path", path)
			return l.finish(cfg, log)
		}
		if !l.fs.IsNotExist(err) {
			return nil, err
		}
	}

	return l.finish(Defaults(), log)
}

// LoadFrom reads settings from a specific path. A missing file yields defaults.
// Environment variables override file values.
func (l *Loader) LoadFrom(ctx context.Context, path string) (*Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("loading settings", "path", path)

	cfg, err := l.read(filepath.Clean(path))
	if err != nil {
		if l.fs.IsNotExist(err) {
			return l.finish(Defaults(), log)
		}
		return nil, err
	}
	return l.finish(cfg, log)
}

// Load reads settings using the real file system.
func Load(ctx context.Context) (*Settings, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx)
}

// LoadFrom reads settings from a specific path using the real file system.
func LoadFrom(ctx context.Context, path string) (*Settings, error) {
	return NewLoader(&RealFileSystem{}).LoadFrom(ctx, path)
}

// read decodes one settings file, choosing TOML or YAML by extension.
// Not-exist errors are returned unwrapped so callers can test them.
func (l *Loader) read(path string) (*Settings, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	cfg := Defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings format %q (valid: .yaml, .yml, .toml)", ext)
	}
	return cfg, nil
}

func (l *Loader) finish(cfg *Settings, log *slog.Logger) (*Settings, error) {
	applyEnvOverrides(cfg, l.getenv, log)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the settings used when no settings file exists.
func Defaults() *Settings {
	return &Settings{
		Strategy: StrategyPrompt,
		LogLevel: "info",
	}
}

// applyEnvOverrides applies environment variable overrides to the settings.
// The getenv parameter abstracts os.Getenv for testability.
func applyEnvOverrides(cfg *Settings, getenv func(string) string, log *slog.Logger) {
	if s := getenv("GUET_STRATEGY"); s != "" {
		log.Debug("strategy overridden by environment", "value", s)
		cfg.Strategy = Strategy(strings.ToLower(s))
	}
	if lvl := getenv("GUET_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
}

// validate checks every field and joins the problems so users can fix all at once.
func validate(cfg *Settings) error {
	var errs []error

	switch cfg.Strategy {
	case StrategyPrompt, StrategyOverwrite, StrategyAlongside:
	case "":
		cfg.Strategy = StrategyPrompt
	default:
		errs = append(errs, fmt.Errorf("invalid strategy %q (valid: prompt, overwrite, alongside)", cfg.Strategy))
	}

	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log_level: %w", err))
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level, defaulting to Info.
func (s *Settings) Level() slog.Level {
	lvl, err := logger.ParseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}
