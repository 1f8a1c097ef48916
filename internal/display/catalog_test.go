package display

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByName_KnownTool(t *testing.T) {
	d := ByName("Read")

	require.Equal(t, "Read", d.Name)
	require.Equal(t, "📖", d.Icon)
	require.Equal(t, "Reading", d.Verb)
	require.Equal(t, "file_path", d.TargetField)
}

func TestByName_UnknownToolFallsBack(t *testing.T) {
	d := ByName("SomeFutureTool")

	require.Equal(t, "SomeFutureTool", d.Name)
	require.Equal(t, "🔧", d.Icon)
	require.Equal(t, "Using", d.Verb)
	require.Empty(t, d.TargetField)
}

func TestRegistry_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)

	for _, d := range All() {
		require.False(t, seen[d.Name], "duplicate registry entry %q", d.Name)
		require.NotEmpty(t, d.Icon, "entry %q missing icon", d.Name)
		require.NotEmpty(t, d.Verb, "entry %q missing verb", d.Name)

		seen[d.Name] = true
	}
}

func TestRegistry_TargetConfiguration(t *testing.T) {
	for _, d := range All() {
		// Every entry names exactly one target source.
		hasField := d.TargetField != ""
		hasLiteral := d.TargetLiteral != ""
		require.NotEqual(t, hasField, hasLiteral, "entry %q must set exactly one of TargetField/TargetLiteral", d.Name)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Icon = "mutated"

	require.NotEqual(t, "mutated", All()[0].Icon)
}
