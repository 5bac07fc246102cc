package sanitize

import (
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool adds a typed tool to server and registers its input struct fields with guard.
// A nil guard registers the tool without sanitizing.
func AddTool[In, Out any](server *mcp.Server, guard *Guard, tool *mcp.Tool, handler mcp.ToolHandlerFor[In, Out]) error {
	if server == nil || tool == nil {
		return errors.New("server and tool are required")
	}
	if guard != nil {
		if err := guard.Register(NewRegistration(tool.Name, For[In]())); err != nil {
			return err
		}
	}
	mcp.AddTool(server, tool, handler)
	return nil
}
