// Package display turns decoded messages into display-ready events. It is
// the source of truth for tool icons, progress verbs, and summary formats.
package display

// ToolDisplay holds the display metadata for a single tool name.
type ToolDisplay struct {
	// Name is the canonical tool name as it appears in tool_use blocks.
	Name string
	// Icon is the emoji prefix shown when icons are enabled.
	Icon string
	// Verb is the present-tense action shown in progress text (e.g. "Reading").
	Verb string
	// TargetField is the tool input field the progress target is read from.
	TargetField string
	// TargetLiteral is a fixed target shown instead of an input field.
	TargetLiteral string
	// QuoteTarget wraps the target in double quotes (search patterns).
	QuoteTarget bool
	// TruncateTarget shortens long targets (shell commands).
	TruncateTarget bool
}

// ByName looks up display metadata by tool name. Unrecognized names get a
// generic fallback entry so new tools degrade to "Using <name>..." instead
// of failing.
func ByName(name string) ToolDisplay {
	for i := range registry {
		if registry[i].Name == name {
			return registry[i]
		}
	}

	d := fallbackDisplay
	d.Name = name

	return d
}

// All returns a copy of every registered tool display entry.
func All() []ToolDisplay {
	out := make([]ToolDisplay, len(registry))
	copy(out, registry)

	return out
}
