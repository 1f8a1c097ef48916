package display

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hollis-dev/claude-session-engine/internal/message"
)

// Icons used outside the per-tool registry.
const (
	completionIcon  = "✅"
	performanceIcon = "⏱️"
	errorIcon       = "❌"
)

// maxTargetLen caps the displayed length of truncatable targets such as
// shell commands.
const maxTargetLen = 50

// fileUpdatedPattern matches the CLI's canonical file-update result text,
// capturing the path that was written.
var fileUpdatedPattern = regexp.MustCompile(`file (.+) has been updated`)

// fileMutationTools produce a completion event even when their result text
// matches no known pattern. Results for other tools complete silently.
var fileMutationTools = map[string]struct{}{
	"Edit":      {},
	"MultiEdit": {},
	"Write":     {},
}

// Formatter renders display text for session events. Every method is a
// pure function of its arguments and the icon flag fixed at construction.
type Formatter struct {
	icons bool
}

// NewFormatter creates a Formatter. When icons is false all emoji prefixes
// are omitted, including their trailing space.
func NewFormatter(icons bool) *Formatter {
	return &Formatter{icons: icons}
}

// Progress returns the tool-started line, "<icon> <verb> <target>...".
// The target comes from the tool's registered input field; when that field
// is absent or empty, the tool name itself is shown.
func (f *Formatter) Progress(name string, input map[string]any) string {
	d := ByName(name)

	return f.withIcon(d.Icon, d.Verb+" "+resolveTarget(d, name, input)+"...")
}

// Completion returns the tool-completed line for a resolved tool result.
// The second return is false when this tool and result text produce no
// completion event; the caller emits nothing in that case.
//
// Result text of the form "file X has been updated" reports the updated
// file for any tool. Otherwise only file-mutating tools produce an event:
// a Write result mentioning "file" reports a successful write, and any
// remaining result falls back to a generic confirmation.
func (f *Formatter) Completion(name, content string) (string, bool) {
	if m := fileUpdatedPattern.FindStringSubmatch(content); m != nil {
		return f.withIcon(completionIcon, "Updated "+filepath.Base(m[1])), true
	}

	if name == "Write" && strings.Contains(content, "file") {
		return f.withIcon(completionIcon, "File written successfully"), true
	}

	if _, ok := fileMutationTools[name]; ok {
		return f.withIcon(completionIcon, "File operation completed"), true
	}

	return "", false
}

// Performance builds the turn summary from whichever metrics the result
// carries: duration in seconds to one decimal, cost to four decimals, and
// the output token count. Absent fields are omitted entirely; if none are
// present the second return is false and no summary is produced.
func (f *Formatter) Performance(result *message.ResultMessage) (string, bool) {
	var parts []string

	if result.DurationMs != nil {
		parts = append(parts, fmt.Sprintf("%.1fs", *result.DurationMs/1000))
	}

	if result.TotalCostUSD != nil {
		parts = append(parts, fmt.Sprintf("$%.4f", *result.TotalCostUSD))
	}

	if tokens, ok := result.OutputTokens(); ok {
		parts = append(parts, fmt.Sprintf("%d tokens", tokens))
	}

	if len(parts) == 0 {
		return "", false
	}

	return f.withIcon(performanceIcon, "Completed in "+strings.Join(parts, ", ")), true
}

// Error returns the stream-error line, "<icon> Error: <message>".
func (f *Formatter) Error(errMessage string) string {
	return f.withIcon(errorIcon, "Error: "+errMessage)
}

// withIcon prefixes text with an icon and a space. With icons disabled the
// text is returned bare, with no leading space.
func (f *Formatter) withIcon(icon, text string) string {
	if !f.icons || icon == "" {
		return text
	}

	return icon + " " + text
}

// resolveTarget extracts the progress target for a tool invocation.
func resolveTarget(d ToolDisplay, name string, input map[string]any) string {
	if d.TargetLiteral != "" {
		return d.TargetLiteral
	}

	if d.TargetField != "" {
		if v, ok := input[d.TargetField].(string); ok && v != "" {
			if d.TruncateTarget {
				v = truncate(v, maxTargetLen)
			}

			if d.QuoteTarget {
				v = fmt.Sprintf("%q", v)
			}

			return v
		}
	}

	return name
}

// truncate shortens s to at most max runes, appending an ellipsis when
// anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max]) + "..."
}
