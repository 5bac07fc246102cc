package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/argshim-mcp-server/configs"
	"github.com/codex-k8s/argshim-mcp-server/internal/runtime"
)

const testConfig = `
server:
  name: tickets
  version: 1.0.0
tools:
  - name: create_ticket
    input_schema:
      type: object
      properties:
        ticket_id:
          type: integer
        note:
          type: string
      additionalProperties: false
    executor:
      type: template
      template: ok
  - name: strict_ping
    sanitize_arguments: false
    executor:
      type: template
      template: pong
`

func executeCommand(root *cobra.Command, stdin string, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestAllowlistsText(t *testing.T) {
	path := writeConfig(t, testConfig)

	stdout, _, err := executeCommand(NewRootCmd("test"), "", "allowlists", "--config", path)

	require.NoError(t, err)
	assert.Equal(t, "create_ticket: ticket_id, note\nstrict_ping: (passthrough)\ndescribe_tool: tool\n", stdout)
}

func TestAllowlistsJSON(t *testing.T) {
	path := writeConfig(t, testConfig)

	stdout, _, err := executeCommand(NewRootCmd("test"), "", "allowlists", "--config", path, "--format", "json")
	require.NoError(t, err)

	var got []runtime.ToolDescription
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 3)
	assert.Equal(t, runtime.ToolDescription{Tool: "create_ticket", Parameters: []string{"ticket_id", "note"}, Sanitized: true}, got[0])
	assert.False(t, got[1].Sanitized)
}

func TestSanitizeCommand(t *testing.T) {
	path := writeConfig(t, testConfig)

	stdout, stderr, err := executeCommand(NewRootCmd("test"), "",
		"sanitize", "--config", path, "--tool", "create_ticket", `{"ticket_id": 42, "note": "hi", "toolCallId": "abc123"}`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ticket_id": 42, "note": "hi"}`, stdout)
	assert.Equal(t, "dropped: toolCallId\n", stderr)
}

func TestSanitizeCommandStdinJSON(t *testing.T) {
	path := writeConfig(t, testConfig)

	stdout, _, err := executeCommand(NewRootCmd("test"), `{"ticket_id": 1, "extra": true}`,
		"sanitize", "--config", path, "--tool", "create_ticket", "--format", "json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"arguments": {"ticket_id": 1}, "dropped": ["extra"]}`, stdout)
}

func TestSanitizeCommandNonObjectPayload(t *testing.T) {
	path := writeConfig(t, testConfig)

	stdout, stderr, err := executeCommand(NewRootCmd("test"), "",
		"sanitize", "--config", path, "--tool", "create_ticket", `"not-a-mapping"`)

	require.NoError(t, err)
	assert.Equal(t, "\"not-a-mapping\"\n", stdout)
	assert.Empty(t, stderr)
}

func TestSanitizeCommandUnknownTool(t *testing.T) {
	path := writeConfig(t, testConfig)

	_, _, err := executeCommand(NewRootCmd("test"), "", "sanitize", "--config", path, "--tool", "missing", `{}`)
	assert.Equal(t, exitUnknownTool, exitCode(t, err))
	assert.ErrorContains(t, err, "unknown tool")

	_, _, err = executeCommand(NewRootCmd("test"), "", "sanitize", "--config", path, "--tool", "strict_ping", `{}`)
	assert.Equal(t, exitUnknownTool, exitCode(t, err))
	assert.ErrorContains(t, err, "does not sanitize")
}

func TestConfigErrors(t *testing.T) {
	_, _, err := executeCommand(NewRootCmd("test"), "", "allowlists", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, exitConfig, exitCode(t, err))

	path := writeConfig(t, "server:\n  name: x\n")
	_, _, err = executeCommand(NewRootCmd("test"), "", "allowlists", "--config", path)
	assert.Equal(t, exitConfig, exitCode(t, err))

	_, _, err = executeCommand(NewRootCmd("test"), "", "allowlists", "--embedded-config", "missing.yaml")
	assert.Equal(t, exitConfig, exitCode(t, err))
}

func TestReservedToolName(t *testing.T) {
	path := writeConfig(t, strings.Replace(testConfig, "name: strict_ping", "name: describe_tool", 1))

	_, _, err := executeCommand(NewRootCmd("test"), "", "allowlists", "--config", path)
	assert.Equal(t, exitConfig, exitCode(t, err))
}

func TestEmbeddedConfigAllowlists(t *testing.T) {
	stdout, _, err := executeCommand(NewRootCmd("test"), "", "allowlists", "--embedded-config", configs.Default)

	require.NoError(t, err)
	assert.Contains(t, stdout, "create_ticket: ticket_id, note\n")
	assert.Contains(t, stdout, "echo_note: note\n")
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCommand(NewRootCmd("1.2.3"), "", "--version")

	require.NoError(t, err)
	assert.Equal(t, "argshim-mcp-server version 1.2.3\n", stdout)
}
