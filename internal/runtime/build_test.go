package runtime

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/argshim-mcp-server/internal/audit"
	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/protocol"
)

const ticketsConfig = `
server:
  name: tickets
  version: 1.0.0
%SANITIZER%
tools:
  - name: create_ticket
    rate_per_minute: 2
    input_schema:
      type: object
      properties:
        ticket_id:
          type: integer
        note:
          type: string
      required: [ticket_id]
      additionalProperties: false
    executor:
      type: template
      template: 'Ticket {{ arg "ticket_id" }}: {{ arg "note" }}'
  - name: strict_ping
    sanitize_arguments: false
    input_schema:
      type: object
      properties:
        value:
          type: string
      additionalProperties: false
    executor:
      type: template
      template: pong
`

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAudit) Record(_ context.Context, event audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingAudit) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, event := range r.events {
		out = append(out, event.Type)
	}
	return out
}

func loadConfig(t *testing.T, sanitizer string) *dsl.Config {
	t.Helper()
	cfg, err := dsl.Load([]byte(strings.Replace(ticketsConfig, "%SANITIZER%", sanitizer, 1)))
	require.NoError(t, err)
	return cfg
}

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func call(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s returned an error result", name)
	return res
}

func TestBuildDropsUndeclaredArguments(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	events := &recordingAudit{}

	server, guard, err := Builder{Logger: logger, Audit: events}.Build(loadConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"create_ticket", DescribeToolName}, guard.Names())

	session := connect(t, server)
	res := call(t, session, "create_ticket", map[string]any{
		"ticket_id":  42,
		"note":       "hi",
		"toolCallId": "abc123",
	})

	resp := decode[protocol.ToolResponse](t, res)
	assert.Equal(t, protocol.ToolResponse{Status: protocol.StatusSuccess, Reason: "Ticket 42: hi", CorrelationID: "abc123"}, resp)
	assert.Equal(t, []string{audit.EventToolCall, audit.EventToolOK}, events.types())
	assert.Contains(t, logs.String(), "dropped unsupported tool arguments")
	assert.Contains(t, logs.String(), `"dropped":["toolCallId"]`)
}

func TestBuildRateLimit(t *testing.T) {
	server, _, err := Builder{}.Build(loadConfig(t, ""))
	require.NoError(t, err)
	session := connect(t, server)

	for i := 0; i < 2; i++ {
		resp := decode[protocol.ToolResponse](t, call(t, session, "create_ticket", map[string]any{"ticket_id": i}))
		assert.Equal(t, protocol.StatusSuccess, resp.Status)
	}
	resp := decode[protocol.ToolResponse](t, call(t, session, "create_ticket", map[string]any{"ticket_id": 3}))
	assert.Equal(t, protocol.StatusDenied, resp.Status)
	assert.Equal(t, "rate limit exceeded", resp.Reason)
	assert.NotEmpty(t, resp.CorrelationID)
}

func TestBuildToolOptOutKeepsStrictValidation(t *testing.T) {
	server, guard, err := Builder{}.Build(loadConfig(t, ""))
	require.NoError(t, err)
	_, registered := guard.Lookup("strict_ping")
	assert.False(t, registered)

	session := connect(t, server)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "strict_ping",
		Arguments: map[string]any{"value": "x", "toolCallId": "abc123"},
	})
	assert.True(t, err != nil || res.IsError)
}

func TestBuildSanitizerDisabled(t *testing.T) {
	server, _, err := Builder{}.Build(loadConfig(t, "  sanitizer:\n    enabled: false"))
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "create_ticket",
		Arguments: map[string]any{"ticket_id": 1, "toolCallId": "abc123"},
	})
	assert.True(t, err != nil || res.IsError)

	desc := decode[ToolDescription](t, call(t, session, DescribeToolName, map[string]any{"tool": "create_ticket"}))
	assert.False(t, desc.Sanitized)
}

func TestDescribeTool(t *testing.T) {
	server, _, err := Builder{}.Build(loadConfig(t, ""))
	require.NoError(t, err)
	session := connect(t, server)

	desc := decode[ToolDescription](t, call(t, session, DescribeToolName, map[string]any{"tool": "create_ticket", "toolCallId": "x"}))
	assert.Equal(t, ToolDescription{Tool: "create_ticket", Parameters: []string{"ticket_id", "note"}, Sanitized: true}, desc)

	desc = decode[ToolDescription](t, call(t, session, DescribeToolName, map[string]any{"tool": "strict_ping"}))
	assert.Equal(t, ToolDescription{Tool: "strict_ping", Parameters: []string{}}, desc)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      DescribeToolName,
		Arguments: map[string]any{"tool": "missing"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestBuildRejectsReservedName(t *testing.T) {
	cfg := loadConfig(t, "")
	cfg.Tools[0].Name = DescribeToolName

	_, _, err := Builder{}.Build(cfg)
	assert.ErrorContains(t, err, "reserved")
}

func TestBuildNilConfig(t *testing.T) {
	_, _, err := Builder{}.Build(nil)
	assert.Error(t, err)
}

func TestRateGuard(t *testing.T) {
	var unlimited *rateGuard
	assert.Nil(t, newRateGuard(0))
	assert.True(t, unlimited.Allow())

	limited := newRateGuard(1)
	assert.True(t, limited.Allow())
	assert.False(t, limited.Allow())
}

func TestCorrelationIDFallbacks(t *testing.T) {
	assert.Equal(t, "req-1", correlationID(context.Background(), map[string]any{"request_id": "req-1"}))
	assert.NotEmpty(t, correlationID(context.Background(), nil))
	assert.Equal(t, "timeout", timeoutMessage(" "))
	assert.Equal(t, "too slow", timeoutMessage("too slow"))
}
