package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestRenderBytes(t *testing.T) {
	r := Renderer{LookupEnv: lookup(map[string]string{"NAME": "tickets", "EMPTY": ""})}

	out, err := r.RenderBytes("cfg", []byte(`name: {{ env "NAME" | upper }}
listen: {{ envOr "LISTEN" ":8080" }}
mode: {{ env "EMPTY" | default "strict" }}`))

	require.NoError(t, err)
	assert.Equal(t, "name: TICKETS\nlisten: :8080\nmode: strict", string(out))
}

func TestRenderBytesMissingEnv(t *testing.T) {
	r := Renderer{LookupEnv: lookup(nil)}

	_, err := r.RenderBytes("cfg", []byte(`{{ env "B" }}{{ env "A" }}{{ envOr "C" "x" }}`))

	assert.EqualError(t, err, "missing env vars: A, B")
}

func TestRenderBytesParseError(t *testing.T) {
	_, err := Renderer{}.RenderBytes("", []byte(`{{ env `))
	assert.ErrorContains(t, err, "parse template")
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`value: {{ env "ARGSHIM_RENDER_TEST" }}`), 0o600))
	t.Setenv("ARGSHIM_RENDER_TEST", "42")

	out, err := RenderFile(path)
	require.NoError(t, err)
	assert.Equal(t, "value: 42", string(out))

	_, err = RenderFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}
