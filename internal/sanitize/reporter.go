package sanitize

import (
	"context"
	"log/slog"
)

// Diagnostic describes arguments removed from a single tool call.
type Diagnostic struct {
	// Tool is the registration name.
	Tool string
	// Dropped lists removed keys, sorted.
	Dropped []string
	// CorrelationID is the caller supplied id, if any.
	CorrelationID string
}

// Reporter receives diagnostics for calls that had arguments removed.
type Reporter interface {
	// Report records a diagnostic. It must not block the call.
	Report(ctx context.Context, d Diagnostic)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, d Diagnostic)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, d Diagnostic) {
	f(ctx, d)
}

// Reporters fans a diagnostic out to every non-nil reporter.
type Reporters []Reporter

// Report forwards d to each reporter in order.
func (rs Reporters) Report(ctx context.Context, d Diagnostic) {
	for _, r := range rs {
		if r != nil {
			r.Report(ctx, d)
		}
	}
}

// LogReporter writes diagnostics to slog.
type LogReporter struct {
	// Logger receives the records.
	Logger *slog.Logger
	// Level is the record level; the zero value is info.
	Level slog.Level
}

// Report logs d.
func (r LogReporter) Report(ctx context.Context, d Diagnostic) {
	if r.Logger == nil {
		return
	}
	r.Logger.Log(ctx, r.Level, "dropped unsupported tool arguments",
		"tool", d.Tool,
		"dropped", d.Dropped,
		"correlation_id", d.CorrelationID,
	)
}
