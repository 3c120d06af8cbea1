package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Global flags.
var (
	configFile string
	verbose    bool
	noHistory  bool
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "xl",
	Short: "xl - toolbox for prototyping and random test data",
	Long: `xl is a toolbox for fast prototyping, rudimentary fuzz testing and random
test-data generation.

It generates random integers, reals, fixed-length numbers and strings,
parses key-value strings, renders integers in binary, prints timestamps
and runs shell commands. The same helpers are available to AI assistants
through 'xl mcp serve'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if Setup != nil {
			if err := Setup(configFile); err != nil {
				return err
			}
		}

		level := "info"
		if Config != nil && Config.Log.Level != "" {
			level = Config.Log.Level
		}
		if verbose {
			level = "debug"
		}
		logger, err := newLogger(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		Logger = logger
		toolbox.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = Logger.Sync()
		if Teardown != nil {
			Teardown()
		}
	},
}

// newLogger builds a console logger on stderr so command output on stdout
// stays machine-readable.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	return config.Build()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "xl %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: .xlconfig in $XL_HOME or the current directory tree)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "do not record this invocation in the history log")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
