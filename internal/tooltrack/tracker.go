// Package tooltrack maintains the set of in-flight tool invocations and
// correlates completions by tool_use id.
package tooltrack

import (
	"github.com/hollis-dev/claude-session-engine/internal/display"
	"github.com/hollis-dev/claude-session-engine/internal/message"
)

// ActiveTool is a tool invocation awaiting its correlated result.
type ActiveTool struct {
	ID    string
	Name  string
	Input map[string]any
}

// Tracker owns the active tool set for one session. Ids are unique within
// the set; registering an id twice replaces the earlier entry.
//
// Tracker is not safe for concurrent use. The engine's single handler
// goroutine owns it.
type Tracker struct {
	formatter *display.Formatter
	active    map[string]ActiveTool
}

// NewTracker creates an empty Tracker rendering events through formatter.
func NewTracker(formatter *display.Formatter) *Tracker {
	return &Tracker{
		formatter: formatter,
		active:    make(map[string]ActiveTool),
	}
}

// Register adds a tool_use block to the active set and returns its
// progress event.
func (t *Tracker) Register(use *message.ToolUseBlock) *display.ToolStarted {
	t.active[use.ID] = ActiveTool{
		ID:    use.ID,
		Name:  use.Name,
		Input: use.Input,
	}

	return &display.ToolStarted{Text: t.formatter.Progress(use.Name, use.Input)}
}

// Resolve correlates a tool_result block with its active tool. An unknown
// tool_use_id is ignored silently: no state change, no event. A matched
// tool is removed exactly once; whether that removal also produces a
// completion event depends on the tool and its result text.
func (t *Tracker) Resolve(result *message.ToolResultBlock) (*display.ToolCompleted, bool) {
	tool, ok := t.active[result.ToolUseID]
	if !ok {
		return nil, false
	}

	delete(t.active, result.ToolUseID)

	text, ok := t.formatter.Completion(tool.Name, result.Content)
	if !ok {
		return nil, false
	}

	return &display.ToolCompleted{Text: text}, true
}

// Contains reports whether an invocation with the given id is active.
func (t *Tracker) Contains(id string) bool {
	_, ok := t.active[id]

	return ok
}

// Len returns the number of active invocations.
func (t *Tracker) Len() int {
	return len(t.active)
}

// Reset discards all active invocations.
func (t *Tracker) Reset() {
	clear(t.active)
}
