package audit

import (
	"context"
	"log/slog"

	"github.com/codex-k8s/argshim-mcp-server/internal/sanitize"
)

// Event types.
const (
	EventToolCall         = "tool_call"
	EventToolOK           = "tool_ok"
	EventToolError        = "tool_error"
	EventToolDenied       = "tool_denied"
	EventArgumentsDropped = "arguments_dropped"
)

// Event represents an audit entry for a tool call.
type Event struct {
	// Type describes the event kind.
	Type string
	// Tool is the tool name.
	Tool string
	// CorrelationID links related events.
	CorrelationID string
	// Status is the tool response status, if any.
	Status string
	// Reason provides additional context.
	Reason string
	// Dropped lists arguments removed before validation.
	Dropped []string
}

// Logger records audit events.
type Logger interface {
	// Record stores an audit event.
	Record(ctx context.Context, event Event)
}

// StdLogger writes audit events to slog.
type StdLogger struct {
	logger *slog.Logger
}

// New returns a StdLogger.
func New(logger *slog.Logger) *StdLogger {
	return &StdLogger{logger: logger}
}

// Record logs an audit event.
func (l *StdLogger) Record(ctx context.Context, event Event) {
	if l == nil || l.logger == nil {
		return
	}
	attrs := []any{
		"type", event.Type,
		"tool", event.Tool,
		"correlation_id", event.CorrelationID,
	}
	if event.Status != "" {
		attrs = append(attrs, "status", event.Status)
	}
	if event.Reason != "" {
		attrs = append(attrs, "reason", event.Reason)
	}
	if len(event.Dropped) > 0 {
		attrs = append(attrs, "dropped", event.Dropped)
	}
	l.logger.InfoContext(ctx, "audit", attrs...)
}

// Report records a sanitizer diagnostic as an arguments_dropped event.
func (l *StdLogger) Report(ctx context.Context, d sanitize.Diagnostic) {
	l.Record(ctx, Event{
		Type:          EventArgumentsDropped,
		Tool:          d.Tool,
		CorrelationID: d.CorrelationID,
		Dropped:       d.Dropped,
	})
}
