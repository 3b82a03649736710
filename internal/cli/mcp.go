package cli

import (
	"github.com/spf13/cobra"

	"github.com/asears/grand-ai-hotel/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Starts a Model Context Protocol server exposing the analyzer as
tools over stdin/stdout, for use by AI assistants and editors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.NewServer(Version).Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
