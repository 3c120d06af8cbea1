package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/models"
	"github.com/xhanalabs/xl/pkg/toolbox"
	"go.uber.org/zap"
)

// finish records the invocation in the history log and passes err through.
// A failure to record is reported on stderr but never fails the command.
func finish(cmd *cobra.Command, args []string, result string, err error) error {
	name := commandName(cmd)
	if err != nil {
		Logger.Debug("command failed", zap.String("command", name), zap.Error(err))
	} else {
		Logger.Debug("command finished", zap.String("command", name))
	}

	if History == nil || noHistory || (Config != nil && !Config.History.Enabled) {
		return err
	}

	entry := models.HistoryEntry{
		Time:    time.Now().UTC(),
		RunID:   toolbox.RandomUUID(),
		Command: name,
		Args:    args,
		Result:  result,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if logErr := History.Write(entry); logErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record history: %v\n", logErr)
	}
	return err
}

// commandName is the command path without the binary name, e.g. "random int".
func commandName(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if i := strings.IndexByte(path, ' '); i >= 0 {
		return path[i+1:]
	}
	return path
}
