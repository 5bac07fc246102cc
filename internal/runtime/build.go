package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/argshim-mcp-server/internal/audit"
	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/log"
	"github.com/codex-k8s/argshim-mcp-server/internal/runtime/executor"
	"github.com/codex-k8s/argshim-mcp-server/internal/sanitize"
	"github.com/codex-k8s/argshim-mcp-server/internal/timeutil"
)

// Builder constructs an MCP server from the DSL config.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
}

// Build creates an MCP server with tools and resources, and the guard holding
// the tools' argument allowlists. The guard is installed on the server unless
// the sanitizer is disabled.
func (b Builder) Build(cfg *dsl.Config) (*mcp.Server, *sanitize.Guard, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Version: cfg.Server.Version,
	}, nil)

	for _, res := range cfg.Resources {
		addResource(server, res)
	}

	guard := b.newGuard(cfg.Server.Sanitizer)
	for _, tool := range cfg.Tools {
		if tool.Name == DescribeToolName {
			return nil, nil, fmt.Errorf("tool name %s is reserved", DescribeToolName)
		}
		if err := b.addTool(server, guard, tool); err != nil {
			return nil, nil, err
		}
	}
	if err := addDescribeTool(server, guard, cfg); err != nil {
		return nil, nil, err
	}

	if err := guard.Preload(); err != nil {
		return nil, nil, err
	}
	if cfg.Server.Sanitizer.IsEnabled() {
		guard.Install(server)
	}
	return server, guard, nil
}

func (b Builder) newGuard(cfg dsl.SanitizerConfig) *sanitize.Guard {
	reporters := sanitize.Reporters{
		sanitize.LogReporter{Logger: b.Logger, Level: log.ParseLevel(cfg.DiagnosticLevel)},
	}
	if reporter, ok := b.Audit.(sanitize.Reporter); ok {
		reporters = append(reporters, reporter)
	}
	return sanitize.NewGuard(sanitize.Options{
		Reporter:        reporters,
		CorrelationKeys: cfg.CorrelationKeys,
	})
}

func addResource(server *mcp.Server, resource dsl.ResourceConfig) {
	server.AddResource(&mcp.Resource{
		Name:        resource.Name,
		URI:         resource.URI,
		Description: resource.Description,
		MIMEType:    resource.MIMEType,
	}, func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: resource.URI, MIMEType: resource.MIMEType, Text: resource.Text},
			},
		}, nil
	})
}

func (b Builder) addTool(server *mcp.Server, guard *sanitize.Guard, tool dsl.ToolConfig) error {
	exec, err := executor.New(tool.Executor)
	if err != nil {
		return fmt.Errorf("tool %s: %w", tool.Name, err)
	}

	if tool.SanitizesArguments() {
		descriptor := sanitize.FromSchema(tool.InputSchema.Document, tool.InputSchema.PropertyOrder)
		if err := guard.Register(sanitize.NewRegistration(tool.Name, descriptor)); err != nil {
			return fmt.Errorf("tool %s: %w", tool.Name, err)
		}
	}

	timeout := timeutil.ParseDurationOrDefault(tool.Timeout, 0)
	if timeout == 0 {
		timeout = timeutil.ParseDurationOrDefault(tool.Executor.Timeout, 0)
	}

	h := &toolHandler{
		name:           tool.Name,
		exec:           exec,
		limiter:        newRateGuard(tool.RatePerMinute),
		timeout:        timeout,
		timeoutMessage: tool.TimeoutMessage,
		logger:         b.Logger,
		audit:          b.Audit,
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        tool.Name,
		Title:       tool.Title,
		Description: tool.Description,
		InputSchema: tool.InputSchema.Document,
		Annotations: buildAnnotations(tool.Annotations),
	}, h.handle)
	return nil
}

func buildAnnotations(cfg *dsl.ToolAnnotationsConfig) *mcp.ToolAnnotations {
	if cfg == nil {
		return nil
	}
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    cfg.ReadOnlyHint,
		DestructiveHint: cfg.DestructiveHint,
		IdempotentHint:  cfg.IdempotentHint,
		OpenWorldHint:   cfg.OpenWorldHint,
		Title:           cfg.Title,
	}
}

// correlationID prefers the id captured by the sanitizer, then legacy argument
// keys, and finally generates one.
func correlationID(ctx context.Context, args map[string]any) string {
	if id, ok := sanitize.CorrelationIDFrom(ctx); ok {
		return id
	}
	for _, key := range []string{"correlation_id", "request_id"} {
		if raw, ok := args[key].(string); ok && strings.TrimSpace(raw) != "" {
			return raw
		}
	}
	return uuid.NewString()
}

func timeoutMessage(value string) string {
	if strings.TrimSpace(value) == "" {
		return "timeout"
	}
	return value
}
