package runtime

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/sanitize"
)

// DescribeToolName is the built-in tool reporting accepted parameters.
const DescribeToolName = "describe_tool"

type describeInput struct {
	Tool string `json:"tool" jsonschema:"name of the tool to describe"`
}

// ToolDescription lists the arguments a tool keeps after sanitizing.
type ToolDescription struct {
	// Tool is the tool name.
	Tool string `json:"tool"`
	// Parameters are the accepted argument names in declaration order.
	Parameters []string `json:"parameters"`
	// Sanitized reports whether undeclared arguments are dropped before validation.
	Sanitized bool `json:"sanitized"`
}

// Describe resolves the description of a registered tool.
func Describe(guard *sanitize.Guard, name string, installed bool) (ToolDescription, error) {
	desc := ToolDescription{Tool: name, Parameters: []string{}}
	reg, ok := guard.Lookup(name)
	if !ok {
		return desc, nil
	}
	allowlist, err := reg.Resolve()
	if err != nil {
		return desc, err
	}
	desc.Parameters = allowlist.Names()
	desc.Sanitized = installed
	return desc, nil
}

func addDescribeTool(server *mcp.Server, guard *sanitize.Guard, cfg *dsl.Config) error {
	known := map[string]struct{}{DescribeToolName: {}}
	for _, tool := range cfg.Tools {
		known[tool.Name] = struct{}{}
	}
	installed := cfg.Server.Sanitizer.IsEnabled()

	return sanitize.AddTool(server, guard, &mcp.Tool{
		Name:        DescribeToolName,
		Description: "Describe the arguments a tool accepts. Undeclared arguments are dropped before validation.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, in describeInput) (*mcp.CallToolResult, ToolDescription, error) {
		if _, ok := known[in.Tool]; !ok {
			return nil, ToolDescription{}, fmt.Errorf("unknown tool %q", in.Tool)
		}
		desc, err := Describe(guard, in.Tool, installed)
		return nil, desc, err
	})
}
