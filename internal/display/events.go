package display

// Event type constants.
const (
	EventTypeToolStarted        = "tool_started"
	EventTypeToolCompleted      = "tool_completed"
	EventTypeAssistantText      = "assistant_text"
	EventTypePerformanceSummary = "performance_summary"
	EventTypeSessionError       = "session_error"
)

// Event is one display-ready item pushed to the output sink.
// Use a type switch to distinguish kinds; String returns the text exactly
// as it should be shown.
type Event interface {
	EventType() string
	String() string
}

// Compile-time verification that all event types implement Event.
var (
	_ Event = (*ToolStarted)(nil)
	_ Event = (*ToolCompleted)(nil)
	_ Event = (*AssistantText)(nil)
	_ Event = (*PerformanceSummary)(nil)
	_ Event = (*SessionError)(nil)
)

// ToolStarted announces a tool invocation now in progress.
type ToolStarted struct {
	Text string
}

// EventType implements the Event interface.
func (e *ToolStarted) EventType() string { return EventTypeToolStarted }

func (e *ToolStarted) String() string { return e.Text }

// ToolCompleted summarizes a resolved tool invocation.
type ToolCompleted struct {
	Text string
}

// EventType implements the Event interface.
func (e *ToolCompleted) EventType() string { return EventTypeToolCompleted }

func (e *ToolCompleted) String() string { return e.Text }

// AssistantText carries a text block from the model, verbatim.
type AssistantText struct {
	Text string
}

// EventType implements the Event interface.
func (e *AssistantText) EventType() string { return EventTypeAssistantText }

func (e *AssistantText) String() string { return e.Text }

// PerformanceSummary reports the duration, cost, and token metrics of a
// completed turn.
type PerformanceSummary struct {
	Text string
}

// EventType implements the Event interface.
func (e *PerformanceSummary) EventType() string { return EventTypePerformanceSummary }

func (e *PerformanceSummary) String() string { return e.Text }

// SessionError surfaces a stream-level failure to the user.
type SessionError struct {
	Text string
}

// EventType implements the Event interface.
func (e *SessionError) EventType() string { return EventTypeSessionError }

func (e *SessionError) String() string { return e.Text }
