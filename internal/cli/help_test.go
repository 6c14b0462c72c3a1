package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFormatterPlain(t *testing.T) {
	t.Parallel()

	cmd := NewRootCommand(BuildInfo{Version: "test"})
	NewHelpFormatter("never", &bytes.Buffer{}).ApplyToCommand(cmd)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"lint", "--help"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Usage:")
	assert.Contains(t, text, "Flags:")
	assert.Contains(t, text, "--reporter string")
	assert.Contains(t, text, "Global Flags:")
	assert.NotContains(t, text, "\x1b[")
}

func TestStyleFlagLineLeavesUnsplittableLines(t *testing.T) {
	t.Parallel()

	h := NewHelpFormatter("never", &bytes.Buffer{})
	assert.Equal(t, "", h.styleFlagLine(""))
	assert.Equal(t, "      --fix   Correct violations", h.styleFlagLine("      --fix   Correct violations"))
	assert.Equal(t, "continued", h.styleFlagLine("continued"))
}

func TestRpad(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lint  ", rpad("lint", 6))
	assert.Equal(t, "version", rpad("version", 3))
}
