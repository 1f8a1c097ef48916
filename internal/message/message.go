// Package message defines the typed messages decoded from the CLI's
// stream-json output, and the outbound encoding for user turns.
package message

// Message represents one decoded record from the CLI output stream.
// Use type assertion or type switch to determine the concrete type.
type Message interface {
	MessageType() string
}

// Compile-time verification that all message types implement Message.
var (
	_ Message = (*SystemMessage)(nil)
	_ Message = (*AssistantMessage)(nil)
	_ Message = (*UserMessage)(nil)
	_ Message = (*ResultMessage)(nil)
	_ Message = (*ErrorMessage)(nil)
	_ Message = (*UnknownMessage)(nil)
)

// SystemMessage is a lifecycle notification from the CLI. The first message
// of every process is subtype "init" and carries the conversation's
// session identifier.
//
//nolint:tagliatelle // Claude CLI uses snake_case
type SystemMessage struct {
	Type      string `json:"type"`
	Subtype   string `json:"subtype"`
	SessionID string `json:"session_id,omitempty"`
}

// MessageType implements the Message interface.
func (m *SystemMessage) MessageType() string { return "system" }

// AssistantMessage is a turn from the model. Content preserves the wire
// order of text, thinking, and tool_use blocks.
type AssistantMessage struct {
	Type    string         `json:"type"`
	Content []ContentBlock `json:"content"`
}

// MessageType implements the Message interface.
func (m *AssistantMessage) MessageType() string { return "assistant" }

// UserMessage is a user-role record echoed by the CLI, most commonly
// carrying tool_result blocks for earlier tool invocations. Plain string
// content is normalized to a single TextBlock.
type UserMessage struct {
	Type    string         `json:"type"`
	Content []ContentBlock `json:"content"`
}

// MessageType implements the Message interface.
func (m *UserMessage) MessageType() string { return "user" }

// ResultMessage closes a request/response turn and reports its metrics.
// All fields are optional on the wire; absent fields stay nil.
//
//nolint:tagliatelle // Claude CLI uses snake_case
type ResultMessage struct {
	Type         string   `json:"type"`
	Subtype      string   `json:"subtype,omitempty"`
	DurationMs   *float64 `json:"duration_ms,omitempty"`
	TotalCostUSD *float64 `json:"total_cost_usd,omitempty"`
	IsError      bool     `json:"is_error,omitempty"`
	Usage        *Usage   `json:"usage,omitempty"`
}

// MessageType implements the Message interface.
func (m *ResultMessage) MessageType() string { return "result" }

// OutputTokens returns the output token count and whether usage was present.
func (m *ResultMessage) OutputTokens() (int, bool) {
	if m.Usage == nil {
		return 0, false
	}

	return m.Usage.OutputTokens, true
}

// Usage contains token usage information.
//
//nolint:tagliatelle // Claude CLI uses snake_case
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// ErrorMessage reports a stream-level failure from the CLI.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageType implements the Message interface.
func (m *ErrorMessage) MessageType() string { return "error" }

// UnknownMessage is the decode result for a well-formed line whose "type"
// tag is not recognized. It carries the raw tag for diagnostics and is
// otherwise a no-op; new protocol extensions must never fail the stream.
type UnknownMessage struct {
	RawType string
}

// MessageType implements the Message interface.
func (m *UnknownMessage) MessageType() string { return m.RawType }
