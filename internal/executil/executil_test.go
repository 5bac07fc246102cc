package executil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	data := TemplateData{
		Args:          map[string]any{"ticket_id": 42, "tags": []string{"a", "b"}},
		ToolName:      "create_ticket",
		CorrelationID: "c1",
	}

	out, err := RenderTemplate(`{{ .ToolName }} {{ arg "ticket_id" }} {{ argOr "note" "none" }} {{ json (arg "tags") }} {{ .CorrelationID }}`, data)

	require.NoError(t, err)
	assert.Equal(t, `create_ticket 42 none ["a","b"] c1`, out)
}

func TestRenderTemplateErrors(t *testing.T) {
	_, err := RenderTemplate(`{{ arg `, TemplateData{})
	assert.ErrorContains(t, err, "template parse")

	_, err = RenderTemplate(`{{ .Missing }}`, TemplateData{})
	assert.ErrorContains(t, err, "template render")
}

func TestBuildCommandForms(t *testing.T) {
	data := TemplateData{Args: map[string]any{"name": "x"}}

	shell, err := BuildCommand(context.Background(), `echo {{ arg "name" }}`, nil, map[string]string{"TOOL": "{{ arg \"name\" }}"}, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"bash", "-c", "echo x"}, shell.Args)
	assert.Contains(t, shell.Env, "TOOL=x")

	argv, err := BuildCommand(context.Background(), "echo", []string{`{{ arg "name" }}`}, nil, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "x"}, argv.Args)
}

func TestRunCommand(t *testing.T) {
	out, code, err := RunCommand(context.Background(), "echo", []string{"hello"}, nil, TemplateData{})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello\n", out)
}
