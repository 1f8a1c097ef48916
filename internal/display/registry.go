package display

// registry is the static table of known tools. Order is cosmetic; lookups
// are by exact name.
var registry = []ToolDisplay{
	{
		Name:        "Read",
		Icon:        "📖",
		Verb:        "Reading",
		TargetField: "file_path",
	},
	{
		Name:        "Write",
		Icon:        "📝",
		Verb:        "Writing",
		TargetField: "file_path",
	},
	{
		Name:        "Edit",
		Icon:        "✏️",
		Verb:        "Editing",
		TargetField: "file_path",
	},
	{
		Name:        "MultiEdit",
		Icon:        "✏️",
		Verb:        "Editing",
		TargetField: "file_path",
	},
	{
		Name:           "Bash",
		Icon:           "⚡",
		Verb:           "Running",
		TargetField:    "command",
		TruncateTarget: true,
	},
	{
		Name:        "Grep",
		Icon:        "🔍",
		Verb:        "Searching",
		TargetField: "pattern",
		QuoteTarget: true,
	},
	{
		Name:        "Glob",
		Icon:        "📁",
		Verb:        "Finding files",
		TargetField: "pattern",
		QuoteTarget: true,
	},
	{
		Name:        "Task",
		Icon:        "🤖",
		Verb:        "Starting task",
		TargetField: "description",
	},
	{
		Name:        "WebFetch",
		Icon:        "🌐",
		Verb:        "Fetching",
		TargetField: "url",
	},
	{
		Name:        "WebSearch",
		Icon:        "🔍",
		Verb:        "Searching",
		TargetField: "query",
		QuoteTarget: true,
	},
	{
		Name:          "TodoWrite",
		Icon:          "📋",
		Verb:          "Updating todos",
		TargetLiteral: "todo list",
	},
}

// fallbackDisplay is used for tool names not present in the registry.
var fallbackDisplay = ToolDisplay{
	Icon: "🔧",
	Verb: "Using",
}
