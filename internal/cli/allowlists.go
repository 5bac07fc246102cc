package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/argshim-mcp-server/internal/runtime"
)

// NewAllowlistsCmd creates the "allowlists" subcommand.
func NewAllowlistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allowlists",
		Short: "Print the arguments each tool accepts",
		Args:  cobra.NoArgs,
		RunE:  runAllowlists,
	}
	cmd.Flags().String("format", "text", "Output format: text | json")
	return cmd
}

func runAllowlists(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return exitError(exitConfig, "unknown format %q", format)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	_, guard, err := runtime.Builder{Logger: quietLogger()}.Build(s.dsl)
	if err != nil {
		return buildError(err)
	}

	names := make([]string, 0, len(s.dsl.Tools)+1)
	for _, tool := range s.dsl.Tools {
		names = append(names, tool.Name)
	}
	names = append(names, runtime.DescribeToolName)

	descriptions := make([]runtime.ToolDescription, 0, len(names))
	for _, name := range names {
		desc, err := runtime.Describe(guard, name, s.dsl.Server.Sanitizer.IsEnabled())
		if err != nil {
			return buildError(err)
		}
		descriptions = append(descriptions, desc)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(descriptions)
	}
	for _, desc := range descriptions {
		parts := []string{desc.Tool + ":"}
		if len(desc.Parameters) > 0 {
			parts = append(parts, strings.Join(desc.Parameters, ", "))
		}
		if !desc.Sanitized {
			parts = append(parts, "(passthrough)")
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
	}
	return nil
}
