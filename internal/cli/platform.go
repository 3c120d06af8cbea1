package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xhanalabs/xl/pkg/toolbox"
)

var platformAll bool

var platformCmd = &cobra.Command{
	Use:   "platform",
	Short: "Print the name of the platform xl was built for",
	Long: `Print the platform name xl was compiled for: one of windows, linux, android,
bsd, hp-ux, aix, ios, osx or solaris. Other targets print an empty line.

Pass --all to list every name that can be reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if platformAll {
			result := strings.Join(toolbox.Platforms(), "\n")
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return finish(cmd, args, result, nil)
		}
		name := toolbox.PlatformName()
		fmt.Fprintln(cmd.OutOrStdout(), name)
		return finish(cmd, args, name, nil)
	},
}

func init() {
	platformCmd.Flags().BoolVar(&platformAll, "all", false, "list every platform name")
	rootCmd.AddCommand(platformCmd)
}
