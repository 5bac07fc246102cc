package sanitize

import (
	"context"
	"encoding/json"
	"strings"
)

// DefaultCorrelationKeys are argument keys clients commonly use to tag a call.
var DefaultCorrelationKeys = []string{"toolCallId", "tool_call_id", "correlation_id", "request_id"}

type correlationKey struct{}

// WithCorrelationID returns ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the id captured for the current call.
func CorrelationIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok && id != ""
}

// correlationFrom returns the first non-empty string value among keys.
func correlationFrom(raw json.RawMessage, keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	fields, ok := decodeObject(raw)
	if !ok {
		return ""
	}
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		var id string
		if err := json.Unmarshal(value, &id); err != nil {
			continue
		}
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	return ""
}
