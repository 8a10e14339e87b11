package model

// TransformOptions toggles the instrumentation features for a single transform.
type TransformOptions struct {
	// TrackState is the master switch for state-update instrumentation.
	TrackState bool
	// TrackEffect is forwarded to the overlay; the engine does not read it.
	TrackEffect bool
	// RuntimeModule is the module the tracking hook is imported from.
	// Empty selects the default runtime module.
	RuntimeModule string
	// FirstMatchOnly emits at most one tracking call per line, even when a
	// line invokes several updaters.
	FirstMatchOnly bool
}

// OverlayConfig configures the in-browser overlay bootstrap module.
type OverlayConfig struct {
	Theme          string
	ShowStatus     bool
	AnimationSpeed int
	MaxButterflies int
	TrackEffect    bool
	TrackState     bool
}

// PipelineOptions configures the host pipeline around the engine.
type PipelineOptions struct {
	Enabled bool
	// OverlayImport is the module id entry files import to boot the overlay.
	OverlayImport string
	Overlay       OverlayConfig
	Transform     TransformOptions
}
