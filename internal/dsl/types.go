package dsl

// Config is the top-level YAML configuration.
type Config struct {
	// Server describes the MCP server settings.
	Server ServerConfig `yaml:"server"`
	// Tools lists all tool declarations.
	Tools []ToolConfig `yaml:"tools"`
	// Resources lists static resources.
	Resources []ResourceConfig `yaml:"resources"`
}

// ServerConfig defines MCP server settings.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
	// Transport selects the server transport ("http" or "stdio").
	Transport string `yaml:"transport"`
	// ShutdownTimeout overrides graceful shutdown duration.
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	// HTTP configures HTTP transport.
	HTTP HTTPConfig `yaml:"http"`
	// Sanitizer configures unknown-argument removal.
	Sanitizer SanitizerConfig `yaml:"sanitizer"`
	// Preflight lists commands that must succeed before serving.
	Preflight []CheckConfig `yaml:"preflight"`
}

// CheckConfig is a command run once before the server starts.
type CheckConfig struct {
	// Name identifies the check in logs.
	Name string `yaml:"name"`
	// Command is the executable or shell command.
	Command string `yaml:"command"`
	// Args contains command arguments.
	Args []string `yaml:"args"`
	// Env adds environment variables.
	Env map[string]string `yaml:"env"`
	// Timeout limits the check duration.
	Timeout string `yaml:"timeout"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`
	// Path is the MCP HTTP endpoint path.
	Path string `yaml:"path"`
	// ReadTimeout limits request read time.
	ReadTimeout string `yaml:"read_timeout"`
	// WriteTimeout limits response write time.
	WriteTimeout string `yaml:"write_timeout"`
	// IdleTimeout controls idle connections.
	IdleTimeout string `yaml:"idle_timeout"`
	// Stateless disables session tracking.
	Stateless bool `yaml:"stateless"`
}

// SanitizerConfig configures the argument sanitizer.
type SanitizerConfig struct {
	// Enabled installs the sanitizer; defaults to true.
	Enabled *bool `yaml:"enabled"`
	// CorrelationKeys are argument keys read as the caller's correlation id.
	// Omitted means the built-in defaults; an empty list disables capture.
	CorrelationKeys []string `yaml:"correlation_keys"`
	// DiagnosticLevel is the log level of dropped-argument records.
	DiagnosticLevel string `yaml:"diagnostic_level"`
}

// IsEnabled reports whether the sanitizer is installed.
func (s SanitizerConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// ToolConfig declares a tool exposed by the MCP server.
type ToolConfig struct {
	// Name is the tool name.
	Name string `yaml:"name"`
	// Title is the human-friendly tool title.
	Title string `yaml:"title"`
	// Description explains the tool for the agent.
	Description string `yaml:"description"`
	// Annotations provides optional tool hints.
	Annotations *ToolAnnotationsConfig `yaml:"annotations,omitempty"`
	// Timeout is the tool execution timeout.
	Timeout string `yaml:"timeout"`
	// TimeoutMessage is returned on timeout.
	TimeoutMessage string `yaml:"timeout_message"`
	// RatePerMinute limits calls per minute; zero disables the limit.
	RatePerMinute int `yaml:"rate_per_minute"`
	// SanitizeArguments drops undeclared arguments before validation; defaults to true.
	SanitizeArguments *bool `yaml:"sanitize_arguments"`
	// InputSchema defines JSON Schema for tool input.
	InputSchema Schema `yaml:"input_schema"`
	// Executor describes how the tool is executed.
	Executor ExecutorConfig `yaml:"executor"`
}

// SanitizesArguments reports whether undeclared arguments are dropped for this tool.
func (t ToolConfig) SanitizesArguments() bool {
	return t.SanitizeArguments == nil || *t.SanitizeArguments
}

// ExecutorConfig defines how to execute a tool.
type ExecutorConfig struct {
	// Type selects executor implementation (shell or template).
	Type string `yaml:"type"`
	// Command is the executable or shell command.
	Command string `yaml:"command"`
	// Args contains command arguments.
	Args []string `yaml:"args"`
	// Env adds environment variables for execution.
	Env map[string]string `yaml:"env"`
	// Template is the response text of a template executor.
	Template string `yaml:"template"`
	// Timeout is the executor timeout.
	Timeout string `yaml:"timeout"`
}

// ResourceConfig declares a static MCP resource.
type ResourceConfig struct {
	// Name is a human-friendly resource name.
	Name string `yaml:"name"`
	// URI is the resource identifier.
	URI string `yaml:"uri"`
	// Description explains the resource.
	Description string `yaml:"description"`
	// MIMEType sets the content type.
	MIMEType string `yaml:"mime_type"`
	// Text is the static resource content.
	Text string `yaml:"text"`
}

// ToolAnnotationsConfig defines tool behavior hints.
type ToolAnnotationsConfig struct {
	// ReadOnlyHint indicates a read-only tool.
	ReadOnlyHint bool `yaml:"read_only_hint,omitempty"`
	// DestructiveHint indicates the tool may be destructive.
	DestructiveHint *bool `yaml:"destructive_hint,omitempty"`
	// IdempotentHint indicates repeated calls have no additional effect.
	IdempotentHint bool `yaml:"idempotent_hint,omitempty"`
	// OpenWorldHint indicates interaction with external entities.
	OpenWorldHint *bool `yaml:"open_world_hint,omitempty"`
	// Title is an optional tool display title.
	Title string `yaml:"title,omitempty"`
}
