package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/argshim-mcp-server/configs"
	"github.com/codex-k8s/argshim-mcp-server/internal/audit"
	"github.com/codex-k8s/argshim-mcp-server/internal/config"
	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/log"
	"github.com/codex-k8s/argshim-mcp-server/internal/render"
	"github.com/codex-k8s/argshim-mcp-server/internal/runtime"
	"github.com/codex-k8s/argshim-mcp-server/internal/sanitize"
)

type settings struct {
	env    config.Config
	logger *slog.Logger
	dsl    *dsl.Config
}

// loadSettings reads environment settings, applies flag overrides, and loads the DSL config.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	envCfg, err := config.Load()
	if err != nil {
		return nil, exitError(exitConfig, "config error: %v", err)
	}
	flags := cmd.Flags()
	if value, _ := flags.GetString("config"); value != "" {
		envCfg.ConfigPath = value
	}
	if value, _ := flags.GetString("log-level"); value != "" {
		envCfg.LogLevel = value
	}
	if value, _ := flags.GetString("log-format"); value != "" {
		envCfg.LogFormat = value
	}
	logger := log.NewWriter(cmd.ErrOrStderr(), envCfg.LogLevel, envCfg.LogFormat)

	var rendered []byte
	if embedded, _ := flags.GetString("embedded-config"); strings.TrimSpace(embedded) != "" {
		raw, loadErr := configs.Load(embedded)
		if loadErr != nil {
			return nil, exitError(exitConfig, "load embedded config: %v", loadErr)
		}
		rendered, err = render.RenderBytes(embedded, raw)
	} else {
		rendered, err = render.RenderFile(envCfg.ConfigPath)
	}
	if err != nil {
		return nil, exitError(exitConfig, "render config: %v", err)
	}

	dslCfg, err := dsl.Load(rendered)
	if err != nil {
		return nil, exitError(exitConfig, "parse config: %v", err)
	}
	return &settings{env: envCfg, logger: logger, dsl: dslCfg}, nil
}

func (s *settings) builder() runtime.Builder {
	return runtime.Builder{Logger: s.logger, Audit: audit.New(s.logger)}
}

func quietLogger() *slog.Logger {
	return log.NewWriter(io.Discard, "error", "text")
}

func buildError(err error) error {
	if errors.Is(err, sanitize.ErrIntrospection) {
		return exitError(exitIntrospection, "build server: %v", err)
	}
	return exitError(exitConfig, "build server: %v", err)
}
