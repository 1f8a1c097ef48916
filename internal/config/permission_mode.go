package config

// NormalizePermissionMode maps legacy permission mode names to current CLI
// values and applies the default for an unset mode.
//
// Legacy mappings:
//   - "acceptAll" -> "bypassPermissions"
//   - "prompt" -> "default"
//
// An empty mode normalizes to "default".
func NormalizePermissionMode(mode string) string {
	switch mode {
	case "":
		return "default"
	case "acceptAll":
		return "bypassPermissions"
	case "prompt":
		return "default"
	default:
		return mode
	}
}
