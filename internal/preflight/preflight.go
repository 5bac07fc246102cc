package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codex-k8s/argshim-mcp-server/internal/dsl"
	"github.com/codex-k8s/argshim-mcp-server/internal/executil"
	"github.com/codex-k8s/argshim-mcp-server/internal/timeutil"
)

// Run executes preflight checks in order and stops at the first failure.
func Run(ctx context.Context, checks []dsl.CheckConfig, logger *slog.Logger) error {
	for idx, check := range checks {
		name := check.Name
		if name == "" {
			name = fmt.Sprintf("#%d", idx)
		}
		if err := runCheck(ctx, check, name, logger); err != nil {
			return err
		}
	}
	return nil
}

func runCheck(ctx context.Context, check dsl.CheckConfig, name string, logger *slog.Logger) error {
	if timeout := timeutil.ParseDurationOrDefault(check.Timeout, 0); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if logger != nil {
		logger.Info("running preflight check", "check", name)
	}

	output, exitCode, err := executil.RunCommand(ctx, check.Command, check.Args, check.Env, executil.TemplateData{})
	output = strings.TrimSpace(output)
	if err != nil {
		if logger != nil {
			logger.Error("preflight check failed", "check", name, "exit_code", exitCode, "output", output)
		}
		return fmt.Errorf("preflight check %s failed: %w", name, err)
	}
	if logger != nil && output != "" {
		logger.Debug("preflight check output", "check", name, "output", output)
	}
	return nil
}
