package executor

import (
	"context"
	"strings"

	"github.com/codex-k8s/argshim-mcp-server/internal/executil"
)

// Template answers with rendered text and runs nothing.
type Template struct {
	// Text is a text/template rendered with the call arguments.
	Text string
}

// Execute renders the template.
func (t Template) Execute(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out, err := executil.RenderTemplate(t.Text, templateData(req))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
