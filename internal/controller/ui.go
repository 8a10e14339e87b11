// Package controller provides output adapters for displaying instrumentation plans,
// progress and reports.
package controller

import (
	m "github.com/mouse-blink/butterfly/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModePlan StartMode = iota
	ModeInstrument
	ModeView
	ModeDiff
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithPlanMode sets the UI to plan mode.
func WithPlanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModePlan
	}
}

// WithInstrumentMode sets the UI to instrumentation progress mode.
func WithInstrumentMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeInstrument
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// WithDiffMode sets the UI to diff viewing mode.
func WithDiffMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDiff
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModePlan}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// UI defines the interface for displaying instrumentation results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	Wait() // Wait for UI to finish (user closes it)
	DisplayPlan(plans []m.Plan, err error) error
	DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int)
	DisplayUpcomingFiles(count int)
	DisplayStartingFile(source m.Source, threadID int)
	DisplayCompletedFile(report m.Report)
	DisplayReports(reports []m.Report) error
	DisplayDiffs(diffs []m.FileDiff) error
}
