package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the argshim-mcp-server command tree. Without a subcommand it serves.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:          "argshim-mcp-server",
		Short:        "MCP server that drops undeclared tool arguments before validation",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runServe,
	}

	root.PersistentFlags().String("config", "", "Path to the YAML config (default $ARGSHIM_CONFIG)")
	root.PersistentFlags().String("embedded-config", "", "Use an embedded config by filename")
	root.PersistentFlags().String("log-level", "", "Log level: debug | info | warn | error (default $ARGSHIM_LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "Log format: json | text (default $ARGSHIM_LOG_FORMAT)")

	root.Version = version
	root.SetVersionTemplate(fmt.Sprintf("argshim-mcp-server version %s\n", version))

	root.AddCommand(NewServeCmd())
	root.AddCommand(NewAllowlistsCmd())
	root.AddCommand(NewSanitizeCmd())
	return root
}
