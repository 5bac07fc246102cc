package executor

import (
	"context"
	"fmt"

	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
)

// Executor types.
const (
	TypeShell    = "shell"
	TypeTemplate = "template"
)

// Request contains tool execution inputs.
type Request struct {
	// ToolName is the tool being executed.
	ToolName string
	// Arguments are the validated tool arguments.
	Arguments map[string]any
	// CorrelationID links related executions.
	CorrelationID string
}

// Executor executes a tool.
type Executor interface {
	// Execute runs the tool logic and returns a message.
	Execute(ctx context.Context, req Request) (string, error)
}

// New builds the executor described by cfg.
func New(cfg dsl.ExecutorConfig) (Executor, error) {
	switch cfg.Type {
	case TypeShell:
		return Shell{Command: cfg.Command, Args: cfg.Args, Env: cfg.Env}, nil
	case TypeTemplate:
		return Template{Text: cfg.Template}, nil
	default:
		return nil, fmt.Errorf("unknown executor type: %s", cfg.Type)
	}
}
