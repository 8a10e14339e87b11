package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/butterfly/internal/model"
)

// OverlayRuntimeModule exports initOverlay.
const OverlayRuntimeModule = "vite-plugin-butterfly-effect/overlay"

var jsStringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// RenderOverlayModule renders the module that boots the in-browser overlay.
func RenderOverlayModule(cfg m.OverlayConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "import { initOverlay } from '%s';\n\n", OverlayRuntimeModule)
	b.WriteString("initOverlay({\n")
	fmt.Fprintf(&b, "  theme: '%s',\n", jsStringEscaper.Replace(cfg.Theme))
	fmt.Fprintf(&b, "  showStatus: %t,\n", cfg.ShowStatus)
	fmt.Fprintf(&b, "  animationSpeed: %d,\n", cfg.AnimationSpeed)
	fmt.Fprintf(&b, "  maxButterflies: %d,\n", cfg.MaxButterflies)
	fmt.Fprintf(&b, "  trackEffect: %t,\n", cfg.TrackEffect)
	fmt.Fprintf(&b, "  trackState: %t,\n", cfg.TrackState)
	b.WriteString("});\n")

	return b.String()
}
