// Package internal provides the App struct that wires the configuration
// manager and history log together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xhanalabs/xl/internal/cli"
	"github.com/xhanalabs/xl/internal/core"
	"github.com/xhanalabs/xl/internal/observability"
	"github.com/xhanalabs/xl/pkg/models"
)

// HistoryFileName is the JSONL file in the base path that records CLI
// invocations.
const HistoryFileName = ".xl_history.jsonl"

// App holds the service dependencies of the xl CLI.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.Config

	// Observability
	History observability.HistoryLog
}

// NewApp loads and validates the configuration under basePath (or from
// configFile when non-empty), opens the history log and assigns the CLI
// package-level variables.
func NewApp(basePath, configFile string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath, configFile)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	app.Config = cfg

	// --- Observability ---
	if cfg.History.Enabled {
		history, err := observability.NewJSONLHistoryLog(filepath.Join(basePath, HistoryFileName))
		if err != nil {
			// Non-fatal: commands still run without a history log.
			fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		} else {
			app.History = history
		}
	}

	// --- Wire CLI ---
	cli.Config = app.Config
	cli.History = app.History

	return app, nil
}

// Close releases resources held by the App.
func (app *App) Close() error {
	if app.History != nil {
		if err := app.History.Close(); err != nil {
			return err
		}
		app.History = nil
		cli.History = nil
	}
	return nil
}

// ResolveBasePath determines the xl base directory. It checks the XL_HOME
// environment variable first, then walks up from the current directory
// looking for a .xlconfig file, and finally falls back to the current
// directory.
func ResolveBasePath() string {
	if home := os.Getenv("XL_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if hasConfigFile(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// hasConfigFile matches .xlconfig with or without a YAML extension.
func hasConfigFile(dir string) bool {
	for _, name := range []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
