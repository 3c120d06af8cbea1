package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

var timestampCmd = &cobra.Command{
	Use:   "timestamp",
	Short: "Print the local time as HH:MM:SS.mmm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ts := toolbox.CurrentTimestamp()
		fmt.Fprintln(cmd.OutOrStdout(), ts)
		return finish(cmd, args, ts, nil)
	},
}

func init() {
	rootCmd.AddCommand(timestampCmd)
}
