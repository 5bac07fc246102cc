package sanitize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const methodCallTool = "tools/call"

// Options configures a Guard.
type Options struct {
	// Reporter receives a diagnostic for every call with dropped arguments.
	Reporter Reporter
	// CorrelationKeys are read from raw arguments before sanitizing.
	// Nil selects DefaultCorrelationKeys; an empty slice disables capture.
	CorrelationKeys []string
}

// Guard holds tool registrations and sanitizes tools/call arguments for them.
type Guard struct {
	mu              sync.RWMutex
	registrations   map[string]*Registration
	installed       map[*mcp.Server]struct{}
	reporter        Reporter
	correlationKeys []string
}

// NewGuard returns an empty guard.
func NewGuard(opts Options) *Guard {
	keys := opts.CorrelationKeys
	if keys == nil {
		keys = DefaultCorrelationKeys
	}
	return &Guard{
		registrations:   make(map[string]*Registration),
		installed:       make(map[*mcp.Server]struct{}),
		reporter:        opts.Reporter,
		correlationKeys: append([]string(nil), keys...),
	}
}

// Register adds a registration. Names must be unique.
func (g *Guard) Register(reg *Registration) error {
	if reg == nil {
		return errors.New("registration is nil")
	}
	if strings.TrimSpace(reg.Name()) == "" {
		return errors.New("registration name is required")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.registrations[reg.Name()]; exists {
		return fmt.Errorf("tool %s is already registered", reg.Name())
	}
	g.registrations[reg.Name()] = reg
	return nil
}

// Lookup returns the registration for a tool.
func (g *Guard) Lookup(name string) (*Registration, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	reg, ok := g.registrations[name]
	return reg, ok
}

// Names returns registered tool names, sorted.
func (g *Guard) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.registrations))
	for name := range g.registrations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preload resolves every registration and joins the introspection failures.
func (g *Guard) Preload() error {
	var errs []error
	for _, name := range g.Names() {
		reg, _ := g.Lookup(name)
		if _, err := reg.Resolve(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Install adds the guard middleware to server once. It reports whether it was added.
func (g *Guard) Install(server *mcp.Server) bool {
	if server == nil {
		return false
	}
	g.mu.Lock()
	if _, done := g.installed[server]; done {
		g.mu.Unlock()
		return false
	}
	g.installed[server] = struct{}{}
	g.mu.Unlock()

	server.AddReceivingMiddleware(g.Middleware())
	return true
}

// Middleware returns receiving middleware that sanitizes tools/call arguments of
// registered tools. Results and errors of next are returned unchanged.
func (g *Guard) Middleware() mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}
			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call == nil || call.Params == nil {
				return next(ctx, method, req)
			}
			reg, ok := g.Lookup(call.Params.Name)
			if !ok {
				return next(ctx, method, req)
			}

			allowlist, err := reg.Resolve()
			if err != nil {
				return nil, err
			}

			ctx = g.withCorrelation(ctx, call)
			sanitized, dropped := SanitizeJSON(call.Params.Arguments, allowlist)
			if len(dropped) == 0 {
				return next(ctx, method, req)
			}

			correlationID, _ := CorrelationIDFrom(ctx)
			if g.reporter != nil {
				g.reporter.Report(ctx, Diagnostic{Tool: reg.Name(), Dropped: dropped, CorrelationID: correlationID})
			}

			params := *call.Params
			params.Arguments = sanitized
			return next(ctx, method, &mcp.CallToolRequest{
				Session: call.Session,
				Params:  &params,
				Extra:   call.Extra,
			})
		}
	}
}

func (g *Guard) withCorrelation(ctx context.Context, call *mcp.CallToolRequest) context.Context {
	if _, ok := CorrelationIDFrom(ctx); ok {
		return ctx
	}
	if id := correlationFrom(call.Params.Arguments, g.correlationKeys); id != "" {
		return WithCorrelationID(ctx, id)
	}
	return ctx
}
