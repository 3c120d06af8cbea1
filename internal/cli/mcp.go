package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	xlmcp "github.com/xhanalabs/xl/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the xl MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the xl MCP server on stdio",
	Long: `Start the xl MCP server on stdio transport.

The server exposes the side-effect-free helpers as MCP tools that AI coding
assistants can call: random_integer, random_real, random_number,
random_string, random_uuid, parse_key_value, number_as_binary, count_digits,
current_timestamp, platform_name and lookup_label. Shell execution is not
exposed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := xlmcp.NewServer(Config, appVersion)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
