package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/butterfly/internal/domain"
	"github.com/mouse-blink/butterfly/internal/domain/tracking"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.Enabled)
	assert.Equal(t, "default", cfg.Overlay.Theme)
	assert.False(t, cfg.Overlay.ShowStatus)
	assert.Equal(t, 1000, cfg.Overlay.AnimationSpeed)
	assert.Equal(t, 10, cfg.Overlay.MaxButterflies)
	assert.True(t, cfg.Track.Effect)
	assert.True(t, cfg.Track.State)
	assert.Equal(t, tracking.DefaultRuntimeModule, cfg.Runtime.Module)
	assert.Equal(t, domain.DefaultOverlayImport, cfg.Runtime.OverlayImport)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestValidate_RejectsUnknownLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"

	require.Error(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
enabled = true

[overlay]
theme = "dark"
max_butterflies = 3

[track]
state = false
first_match_only = true

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	require.NotNil(t, cfg.Enabled)
	assert.True(t, *cfg.Enabled)
	assert.Equal(t, "dark", cfg.Overlay.Theme)
	assert.Equal(t, 3, cfg.Overlay.MaxButterflies)
	assert.Equal(t, 1000, cfg.Overlay.AnimationSpeed)
	assert.False(t, cfg.Track.State)
	assert.True(t, cfg.Track.Effect)
	assert.True(t, cfg.Track.FirstMatchOnly)
	assert.Equal(t, "debug", cfg.Logging.Level)

	opts := cfg.PipelineOptions("production")
	assert.True(t, opts.Enabled)
	assert.False(t, opts.Transform.TrackState)
	assert.True(t, opts.Transform.FirstMatchOnly)
	assert.Equal(t, "dark", opts.Overlay.Theme)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "malformed", content: "enabled = ", want: "failed to parse TOML"},
		{name: "negative speed", content: "[overlay]\nanimation_speed = -1\n", want: "invalid configuration"},
		{name: "unknown level", content: "[logging]\nlevel = \"loud\"\n", want: "invalid configuration"},
		{name: "empty theme", content: "[overlay]\ntheme = \"\"\n", want: "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "")

	nested := filepath.Join(root, "src", "components")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	found, ok, err := Find(nested)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, path, found)
}

func TestResolve(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := Resolve("", dir)
		require.NoError(t, err)

		if cfg.Path != "" {
			// A butterfly.toml above the temp directory would be picked up.
			t.Skipf("found unrelated %s", cfg.Path)
		}

		assert.Equal(t, Default(), cfg)
	})

	t.Run("explicit file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "[overlay]\ntheme = \"light\"\n")

		cfg, err := Resolve(path, "")
		require.NoError(t, err)
		assert.Equal(t, "light", cfg.Overlay.Theme)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Resolve(filepath.Join(t.TempDir(), "nope.toml"), "")
		assert.Error(t, err)
	})
}

func TestIsEnabled(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.IsEnabled("development"))
	assert.False(t, cfg.IsEnabled("production"))
	assert.False(t, cfg.IsEnabled(""))

	disabled := false
	cfg.Enabled = &disabled
	assert.False(t, cfg.IsEnabled("development"))

	cfg.ForceEnable()
	assert.True(t, cfg.IsEnabled("production"))
}
