package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	expected := []string{
		"Header", "Section", "Success", "Warning", "Error",
		"Muted", "FilePath", "Bold", "Indent", "DryRunBanner",
	}
	for _, name := range expected {
		_, ok := StyleRegistry[name]
		assert.True(t, ok, "style %s should exist", name)
	}
}

func TestGetStyle(t *testing.T) {
	assert.Equal(t, StyleRegistry["Success"], GetStyle("Success"))
	assert.Equal(t, lipgloss.NewStyle(), GetStyle("NoSuchStyle"))
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, Load(defaultStyles)) })

	err := Load([]byte("colors:\n  red:\n    light: \"#FF0000\"\n    dark: \"#FF0000\"\nstyles:\n  Alert:\n    bold: true\n    foreground: red\n"))
	require.NoError(t, err)
	assert.Len(t, StyleRegistry, 1)
	assert.True(t, GetStyle("Alert").GetBold())

	assert.Error(t, Load([]byte("styles: [not, a, map]")))
}
