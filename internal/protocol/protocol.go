package protocol

// Tool execution statuses.
const (
	StatusSuccess = "success"
	StatusDenied  = "denied"
	StatusError   = "error"
)

// ToolResponse is the fixed JSON response returned to MCP clients.
type ToolResponse struct {
	// Status indicates the execution status.
	Status string `json:"status"`
	// Reason carries the tool output or the failure message.
	Reason string `json:"reason,omitempty"`
	// CorrelationID links the response to the caller's request.
	CorrelationID string `json:"correlation_id"`
}
