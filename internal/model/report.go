package model

import "time"

// Report records what happened to a single source file during an instrument run.
type Report struct {
	RunID      string      `yaml:"run_id"`
	Source     Source      `yaml:"source"`
	Kind       OutcomeKind `yaml:"kind"`
	Component  string      `yaml:"component,omitempty"`
	Updaters   []string    `yaml:"updaters,omitempty"`
	Injections []Injection `yaml:"injections,omitempty"`
	Output     Path        `yaml:"output,omitempty"` // file that received the instrumented code
	Diff       string      `yaml:"diff,omitempty"`   // unified diff between the original and instrumented code
	Error      string      `yaml:"error,omitempty"`
	Cached     bool        `yaml:"cached,omitempty"`
	CreatedAt  time.Time   `yaml:"created_at"`
}

// Plan summarises what an instrument run would do to a source file.
type Plan struct {
	Source     Source
	Kind       OutcomeKind
	Component  string
	Injections int
	Err        error
}

// FileDiff is the unified diff of one source file.
type FileDiff struct {
	Path Path
	Diff string
}
