package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
	"go.uber.org/zap"
)

var (
	execTimeout time.Duration
	execStderr  bool
)

// ExitError carries a non-zero exit status of a command run by 'xl exec' so
// main can exit with the same status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run a shell command and print its output",
	Long: `Run a command through the host shell (sh -c, or cmd /C on Windows) and print
what it wrote to stdout. xl exits with the command's exit status.

Without --timeout (or exec.timeout in the config file) the command may run
indefinitely. When the timeout fires the command is killed.

Example:
  xl exec "ls -la"
  xl exec --timeout 5s "make test"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")

		timeout := execTimeout
		if timeout == 0 && Config != nil {
			timeout = Config.Exec.Timeout
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res, err := toolbox.Run(ctx, command)
		if res != nil {
			fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
			if execStderr {
				fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
			}
			Logger.Debug("command exited",
				zap.String("command", command),
				zap.Int("exit_code", res.ExitCode),
				zap.Bool("killed", res.Killed),
				zap.String("duration", res.Duration.String()),
				zap.String("output", humanize.Bytes(uint64(len(res.Stdout)))),
			)
		}
		if err != nil {
			return finish(cmd, args, "", err)
		}
		if res.ExitCode != 0 {
			return finish(cmd, args, res.Stdout, &ExitError{Code: res.ExitCode})
		}
		return finish(cmd, args, res.Stdout, nil)
	},
}

func init() {
	execCmd.Flags().DurationVar(&execTimeout, "timeout", 0, "kill the command after this long (0 means no limit)")
	execCmd.Flags().BoolVar(&execStderr, "stderr", false, "also print the command's stderr")
	execCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(execCmd)
}
