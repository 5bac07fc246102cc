package dsl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/codex-k8s/argshim-mcp-server/internal/timeutil"
)

var (
	transports       = []string{"http", "stdio"}
	executorTypes    = []string{"shell", "template"}
	diagnosticLevels = []string{"debug", "info", "warn", "error"}
)

// Validate applies defaults and verifies required fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}

	toolNames := map[string]struct{}{}
	for i := range cfg.Tools {
		tool := &cfg.Tools[i]
		if strings.TrimSpace(tool.Name) == "" {
			return fmt.Errorf("tools[%d].name is required", i)
		}
		if _, exists := toolNames[tool.Name]; exists {
			return fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		toolNames[tool.Name] = struct{}{}
		if err := validateTool(tool); err != nil {
			return fmt.Errorf("tools[%d] (%s): %w", i, tool.Name, err)
		}
	}

	resourceURIs := map[string]struct{}{}
	for i, res := range cfg.Resources {
		if res.URI == "" {
			return fmt.Errorf("resources[%d].uri is required", i)
		}
		if _, exists := resourceURIs[res.URI]; exists {
			return fmt.Errorf("duplicate resource uri: %s", res.URI)
		}
		resourceURIs[res.URI] = struct{}{}
	}
	return nil
}

func validateServer(server *ServerConfig) error {
	if server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if server.Version == "" {
		return fmt.Errorf("server.version is required")
	}
	server.Transport = strings.ToLower(strings.TrimSpace(server.Transport))
	if server.Transport == "" {
		server.Transport = "http"
	}
	if !slices.Contains(transports, server.Transport) {
		return fmt.Errorf("server.transport must be http or stdio")
	}
	if strings.TrimSpace(server.HTTP.Listen) == "" {
		server.HTTP.Listen = ":8080"
	}
	if server.HTTP.Path == "" {
		server.HTTP.Path = "/mcp"
	}
	if !strings.HasPrefix(server.HTTP.Path, "/") {
		return fmt.Errorf("server.http.path must start with /")
	}
	durations := map[string]string{
		"server.shutdown_timeout":   server.ShutdownTimeout,
		"server.http.read_timeout":  server.HTTP.ReadTimeout,
		"server.http.write_timeout": server.HTTP.WriteTimeout,
		"server.http.idle_timeout":  server.HTTP.IdleTimeout,
	}
	for field, value := range durations {
		if !timeutil.ValidDuration(value) {
			return fmt.Errorf("%s is invalid: %q", field, value)
		}
	}

	level := strings.ToLower(strings.TrimSpace(server.Sanitizer.DiagnosticLevel))
	if level == "" {
		level = "debug"
	}
	if !slices.Contains(diagnosticLevels, level) {
		return fmt.Errorf("server.sanitizer.diagnostic_level must be one of %s", strings.Join(diagnosticLevels, ", "))
	}
	server.Sanitizer.DiagnosticLevel = level
	for i, check := range server.Preflight {
		if strings.TrimSpace(check.Command) == "" {
			return fmt.Errorf("server.preflight[%d].command is required", i)
		}
		if !timeutil.ValidDuration(check.Timeout) {
			return fmt.Errorf("server.preflight[%d].timeout is invalid: %q", i, check.Timeout)
		}
	}
	for i, key := range server.Sanitizer.CorrelationKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("server.sanitizer.correlation_keys[%d] is empty", i)
		}
	}
	return nil
}

func validateTool(tool *ToolConfig) error {
	if tool.RatePerMinute < 0 {
		return fmt.Errorf("rate_per_minute must be >= 0")
	}
	if !timeutil.ValidDuration(tool.Timeout) {
		return fmt.Errorf("timeout is invalid: %q", tool.Timeout)
	}
	if !timeutil.ValidDuration(tool.Executor.Timeout) {
		return fmt.Errorf("executor.timeout is invalid: %q", tool.Executor.Timeout)
	}

	tool.Executor.Type = strings.ToLower(strings.TrimSpace(tool.Executor.Type))
	switch tool.Executor.Type {
	case "":
		return fmt.Errorf("executor.type is required")
	case "shell":
		if strings.TrimSpace(tool.Executor.Command) == "" {
			return fmt.Errorf("executor.command is required for shell executors")
		}
	case "template":
		if strings.TrimSpace(tool.Executor.Template) == "" {
			return fmt.Errorf("executor.template is required for template executors")
		}
	default:
		return fmt.Errorf("executor.type must be one of %s", strings.Join(executorTypes, ", "))
	}

	return validateInputSchema(tool.InputSchema.Document)
}

// validateInputSchema requires an object schema that compiles.
func validateInputSchema(doc map[string]any) error {
	if doc["type"] != "object" {
		return fmt.Errorf("input_schema.type must be object")
	}
	if props, ok := doc["properties"]; ok {
		if _, isMap := props.(map[string]any); !isMap {
			return fmt.Errorf("input_schema.properties must be a mapping")
		}
	}
	if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc)); err != nil {
		return fmt.Errorf("input_schema is invalid: %w", err)
	}
	return nil
}
