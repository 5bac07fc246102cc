package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/argshim-mcp-server/internal/runtime"
	"github.com/codex-k8s/argshim-mcp-server/internal/sanitize"
)

type sanitizeOutput struct {
	Arguments json.RawMessage `json:"arguments"`
	Dropped   []string        `json:"dropped"`
}

// NewSanitizeCmd creates the "sanitize" subcommand.
func NewSanitizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanitize --tool <name> [payload]",
		Short: "Sanitize a JSON arguments payload the way the server would",
		Long:  "Sanitize a JSON arguments payload for a tool. The payload is read from stdin when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSanitize,
	}
	cmd.Flags().String("tool", "", "Tool name")
	cmd.Flags().String("format", "text", "Output format: text | json")
	_ = cmd.MarkFlagRequired("tool")
	return cmd
}

func runSanitize(cmd *cobra.Command, args []string) error {
	toolName, _ := cmd.Flags().GetString("tool")
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return exitError(exitConfig, "unknown format %q", format)
	}

	payload, err := readPayload(cmd, args)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	_, guard, err := runtime.Builder{Logger: quietLogger()}.Build(s.dsl)
	if err != nil {
		return buildError(err)
	}

	reg, ok := guard.Lookup(toolName)
	if !ok {
		if declared(s, toolName) {
			return exitError(exitUnknownTool, "tool %s does not sanitize arguments", toolName)
		}
		return exitError(exitUnknownTool, "unknown tool: %s", toolName)
	}
	allowlist, err := reg.Resolve()
	if err != nil {
		return exitError(exitIntrospection, "%v", err)
	}

	sanitized, dropped := sanitize.SanitizeJSON(payload, allowlist)
	if dropped == nil {
		dropped = []string{}
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		if !json.Valid(sanitized) {
			sanitized, _ = json.Marshal(string(sanitized))
		}
		return json.NewEncoder(out).Encode(sanitizeOutput{Arguments: sanitized, Dropped: dropped})
	}
	fmt.Fprintln(out, string(sanitized))
	if len(dropped) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "dropped: %s\n", strings.Join(dropped, ", "))
	}
	return nil
}

func readPayload(cmd *cobra.Command, args []string) (json.RawMessage, error) {
	if len(args) == 1 {
		return json.RawMessage(args[0]), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return json.RawMessage(bytes.TrimSpace(data)), nil
}

func declared(s *settings, name string) bool {
	if name == runtime.DescribeToolName {
		return true
	}
	for _, tool := range s.dsl.Tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}
