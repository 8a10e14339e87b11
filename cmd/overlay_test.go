package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayCmd_PrintsModule(t *testing.T) {
	cmd, _, out := newMockedRoot(t, newOverlayCmd())

	path := writeTestConfig(t, "enabled = false\n\n[overlay]\ntheme = \"neon\"\nmax_butterflies = 3\n")

	cmd.SetArgs([]string{"--config", path, "overlay"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "import { initOverlay } from 'vite-plugin-butterfly-effect/overlay';")
	assert.Contains(t, out.String(), "theme: 'neon',")
	assert.Contains(t, out.String(), "maxButterflies: 3,")
}

func TestOverlayCmd_WritesFile(t *testing.T) {
	cmd, _, out := newMockedRoot(t, newOverlayCmd())

	target := filepath.Join(t.TempDir(), "generated", "overlay.js")

	cmd.SetArgs([]string{"--config", writeTestConfig(t, ""), "overlay", "--out", target})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "initOverlay({")
	assert.Empty(t, out.String())
}

func TestOverlayCmd_RejectsArgs(t *testing.T) {
	cmd, _, _ := newMockedRoot(t, newOverlayCmd())

	cmd.SetArgs([]string{"overlay", "extra"})
	require.Error(t, cmd.Execute())
}
