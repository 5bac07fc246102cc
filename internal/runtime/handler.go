package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codex-k8s/argshim-mcp-server/internal/audit"
	"github.com/codex-k8s/argshim-mcp-server/internal/protocol"
	"github.com/codex-k8s/argshim-mcp-server/internal/runtime/executor"
	"github.com/codex-k8s/argshim-mcp-server/internal/security"
)

type toolHandler struct {
	name           string
	exec           executor.Executor
	limiter        *rateGuard
	timeout        time.Duration
	timeoutMessage string
	logger         *slog.Logger
	audit          audit.Logger
}

// handle receives arguments already sanitized and validated against the input schema.
func (h *toolHandler) handle(ctx context.Context, _ *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, protocol.ToolResponse, error) {
	id := correlationID(ctx, input)
	if h.logger != nil {
		h.logger.InfoContext(ctx, "tool call", "tool", h.name, "correlation_id", id, "args", security.RedactArguments(input))
	}
	h.record(ctx, audit.Event{Type: audit.EventToolCall, Tool: h.name, CorrelationID: id})

	resp := protocol.ToolResponse{Status: protocol.StatusSuccess, CorrelationID: id}

	if !h.limiter.Allow() {
		resp.Status = protocol.StatusDenied
		resp.Reason = "rate limit exceeded"
		h.record(ctx, audit.Event{Type: audit.EventToolDenied, Tool: h.name, CorrelationID: id, Status: resp.Status, Reason: resp.Reason})
		return nil, resp, nil
	}

	ctxTool := ctx
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctxTool, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	output, err := h.exec.Execute(ctxTool, executor.Request{
		ToolName:      h.name,
		Arguments:     input,
		CorrelationID: id,
	})
	switch {
	case errors.Is(ctxTool.Err(), context.DeadlineExceeded):
		resp.Status = protocol.StatusError
		resp.Reason = timeoutMessage(h.timeoutMessage)
	case err != nil:
		resp.Status = protocol.StatusError
		resp.Reason = err.Error()
		if output != "" {
			resp.Reason = fmt.Sprintf("%s: %s", resp.Reason, output)
		}
	default:
		resp.Reason = output
	}

	eventType := audit.EventToolOK
	if resp.Status == protocol.StatusError {
		eventType = audit.EventToolError
		if h.logger != nil {
			h.logger.WarnContext(ctx, "tool failed", "tool", h.name, "correlation_id", id, "reason", resp.Reason)
		}
	}
	h.record(ctx, audit.Event{Type: eventType, Tool: h.name, CorrelationID: id, Status: resp.Status, Reason: resp.Reason})
	return nil, resp, nil
}

func (h *toolHandler) record(ctx context.Context, event audit.Event) {
	if h.audit != nil {
		h.audit.Record(ctx, event)
	}
}
