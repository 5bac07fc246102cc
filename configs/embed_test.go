package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/render"
)

func TestEmbeddedConfigsLoad(t *testing.T) {
	require.Contains(t, Names(), Default)

	for _, name := range Names() {
		raw, err := Load(name)
		require.NoError(t, err)

		rendered, err := render.Renderer{LookupEnv: func(string) (string, bool) { return "", false }}.RenderBytes(name, raw)
		require.NoError(t, err, name)

		_, err = dsl.Load(rendered)
		require.NoError(t, err, name)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load("missing.yaml")
	assert.ErrorContains(t, err, "missing.yaml")
}
