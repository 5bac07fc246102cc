package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// Renderer expands a YAML config template against environment variables.
type Renderer struct {
	// LookupEnv resolves variables; nil uses os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

type envTracker struct {
	lookup  func(string) (string, bool)
	missing map[string]struct{}
}

func (t *envTracker) get(key string) (string, bool) {
	value, ok := t.lookup(key)
	if !ok {
		t.missing[key] = struct{}{}
	}
	return value, ok
}

func (t *envTracker) missingKeys() []string {
	out := make([]string, 0, len(t.missing))
	for key := range t.missing {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func (t *envTracker) funcs() template.FuncMap {
	return template.FuncMap{
		"env": func(key string) string {
			value, _ := t.get(key)
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := t.lookup(key); ok {
				return value
			}
			return def
		},
		"default": func(def, value string) string {
			if value == "" {
				return def
			}
			return value
		},
		"ternary": func(cond bool, a, b string) string {
			if cond {
				return a
			}
			return b
		},
		"join": func(sep string, items []string) string {
			return strings.Join(items, sep)
		},
		"lower":      strings.ToLower,
		"upper":      strings.ToUpper,
		"trimPrefix": strings.TrimPrefix,
		"trimSuffix": strings.TrimSuffix,
		"replace":    strings.ReplaceAll,
	}
}

// RenderFile loads and renders a YAML template file.
func (r Renderer) RenderFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return r.RenderBytes(path, raw)
}

// RenderBytes renders a YAML template from raw bytes. Every variable read with env
// must be set; all missing names are reported together.
func (r Renderer) RenderBytes(name string, raw []byte) ([]byte, error) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	tracker := &envTracker{lookup: lookup, missing: map[string]struct{}{}}

	if strings.TrimSpace(name) == "" {
		name = "config"
	}
	tmpl, err := template.New(name).Funcs(tracker.funcs()).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	execErr := tmpl.Execute(&buf, map[string]any{})
	if missing := tracker.missingKeys(); len(missing) > 0 {
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(missing, ", "))
	}
	if execErr != nil {
		return nil, fmt.Errorf("render template: %w", execErr)
	}
	return buf.Bytes(), nil
}

// RenderFile renders path with the process environment.
func RenderFile(path string) ([]byte, error) {
	return Renderer{}.RenderFile(path)
}

// RenderBytes renders raw with the process environment.
func RenderBytes(name string, raw []byte) ([]byte, error) {
	return Renderer{}.RenderBytes(name, raw)
}
