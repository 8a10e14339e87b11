package model

// Injection describes one tracking call inserted in front of an updater call.
type Injection struct {
	// Line is the 1-based line in the transformed file.
	Line      int    `yaml:"line" msgpack:"line"`
	Column    int    `yaml:"column" msgpack:"column"`
	Component string `yaml:"component" msgpack:"component"`
	Updater   string `yaml:"updater" msgpack:"updater"`
}

// TransformResult is the output of a transform that changed the source.
// A nil *TransformResult means the original text should be used unchanged.
type TransformResult struct {
	Code string `msgpack:"code"`
	// SourceMap is always nil: line mappings are not tracked.
	SourceMap   []byte      `msgpack:"source_map"`
	ImportAdded bool        `msgpack:"import_added"`
	Component   string      `msgpack:"component"`
	Updaters    []string    `msgpack:"updaters"`
	Injections  []Injection `msgpack:"injections"`
}

// OutcomeKind classifies what the host pipeline did with a file.
type OutcomeKind string

const (
	// OutcomeSkipped means the file was not a component file or the pipeline is disabled.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeEntry means the overlay bootstrap import was prepended to an entry file.
	OutcomeEntry OutcomeKind = "entry"
	// OutcomeUnchanged means the engine ran and decided nothing needed to change.
	OutcomeUnchanged OutcomeKind = "unchanged"
	// OutcomeTransformed means the engine rewrote the file.
	OutcomeTransformed OutcomeKind = "transformed"
	// OutcomeFailed means the engine failed and the original text was kept.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of running one file through the host pipeline.
type Outcome struct {
	Kind   OutcomeKind
	Result *TransformResult
	Err    error
}

// Changed reports whether the outcome carries code that differs from the input.
func (o Outcome) Changed() bool {
	return o.Result != nil && (o.Kind == OutcomeTransformed || o.Kind == OutcomeEntry)
}

// FileOutcome pairs a source with its original content and pipeline outcome.
type FileOutcome struct {
	Source   Source
	Original []byte
	Outcome  Outcome
	Cached   bool
}

// CacheEntry is the persisted form of a successful pipeline outcome.
type CacheEntry struct {
	Schema int              `msgpack:"schema"`
	Kind   OutcomeKind      `msgpack:"kind"`
	Result *TransformResult `msgpack:"result"`
}
