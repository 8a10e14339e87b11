package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/butterfly/internal/model"
)

func TestRenderOverlayModule(t *testing.T) {
	got := RenderOverlayModule(m.OverlayConfig{
		Theme:          "dark",
		ShowStatus:     true,
		AnimationSpeed: 2,
		MaxButterflies: 10,
		TrackEffect:    false,
		TrackState:     true,
	})

	want := `import { initOverlay } from 'vite-plugin-butterfly-effect/overlay';

initOverlay({
  theme: 'dark',
  showStatus: true,
  animationSpeed: 2,
  maxButterflies: 10,
  trackEffect: false,
  trackState: true,
});
`

	assert.Equal(t, want, got)
}

func TestRenderOverlayModule_EscapesTheme(t *testing.T) {
	got := RenderOverlayModule(m.OverlayConfig{Theme: "it's\\dark"})

	assert.Contains(t, got, `theme: 'it\'s\\dark',`)
}
