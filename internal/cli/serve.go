package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/codex-k8s/argshim-mcp-server/internal/app"
	"github.com/codex-k8s/argshim-mcp-server/internal/preflight"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the configured tools over HTTP or stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	server, _, err := s.builder().Build(s.dsl)
	if err != nil {
		return buildError(err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	defer stop()

	if err := preflight.Run(ctx, s.dsl.Server.Preflight, s.logger); err != nil {
		return err
	}

	s.logger.Info("starting server",
		"name", s.dsl.Server.Name,
		"transport", s.dsl.Server.Transport,
		"tools", len(s.dsl.Tools),
		"sanitizer", s.dsl.Server.Sanitizer.IsEnabled(),
	)

	if s.dsl.Server.Transport == "stdio" {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
	return s.runHTTP(ctx, server)
}

func (s *settings) runHTTP(ctx context.Context, server *mcp.Server) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: s.dsl.Server.HTTP.Stateless,
	})

	application, err := app.New(context.WithoutCancel(ctx), s.dsl.Server, handler, s.logger, s.env.ShutdownTimeout)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}
