package controller

import (
	"io"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/butterfly/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display. The program
// runs in its own goroutine; Display calls are forwarded to it as messages.
type TUI struct {
	output  io.Writer
	options []tea.ProgramOption

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	started bool
	mode    StartMode
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, options ...tea.ProgramOption) *TUI {
	return &TUI{output: output, options: options}
}

// Start launches the Bubble Tea program for the requested mode.
func (t *TUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)

	t.mu.Lock()
	t.mode = cfg.mode
	t.mu.Unlock()

	return t.startWithModel(newModelForMode(cfg.mode))
}

func newModelForMode(mode StartMode) tea.Model {
	switch mode {
	case ModeInstrument:
		return newRunModel(runTitle)
	case ModeView:
		return newRunModel(reportsTitle)
	case ModeDiff:
		return newDiffModel()
	default:
		return newPlanModel()
	}
}

func (t *TUI) startWithModel(model tea.Model) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return nil
	}

	opts := append([]tea.ProgramOption{tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithMouseCellMotion()}, t.options...)
	program := tea.NewProgram(model, opts...)
	done := make(chan struct{})

	go func() {
		defer close(done)

		_, _ = program.Run()
	}()

	t.program = program
	t.done = done
	t.started = true

	return nil
}

func (t *TUI) ensureStarted() {
	t.mu.Lock()
	started, mode := t.started, t.mode
	t.mu.Unlock()

	if started {
		return
	}

	_ = t.startWithModel(newModelForMode(mode))
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program, started := t.program, t.started
	t.mu.Unlock()

	if !started || program == nil {
		return
	}

	program.Send(msg)
}

// Wait blocks until the user closes the program.
func (t *TUI) Wait() {
	t.mu.Lock()
	done, started := t.done, t.started
	t.mu.Unlock()

	if !started {
		return
	}

	<-done
	t.reset()
}

// Close stops the program and waits for it to exit.
func (t *TUI) Close() {
	t.mu.Lock()
	program, done, started := t.program, t.done, t.started
	t.mu.Unlock()

	if !started {
		return
	}

	program.Quit()
	<-done
	t.reset()
}

func (t *TUI) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = nil
	t.done = nil
	t.started = false
}

// DisplayPlan sends the plan to the program.
func (t *TUI) DisplayPlan(plans []m.Plan, err error) error {
	t.ensureStarted()

	items := make([]planItem, 0, len(plans))

	for _, plan := range plans {
		item := planItem{
			path:       string(plan.Source.Rel()),
			kind:       string(plan.Kind),
			component:  plan.Component,
			injections: plan.Injections,
		}

		if plan.Err != nil {
			item.err = plan.Err.Error()
		}

		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].path < items[j].path })

	t.send(planMsg{items: items, err: err})

	return err
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int) {
	t.send(concurrencyMsg{threads: threads, shardIndex: shardIndex, shards: shardCount})
}

// DisplayUpcomingFiles shows the number of files about to be processed.
func (t *TUI) DisplayUpcomingFiles(count int) {
	t.send(upcomingMsg{count: count})
}

// DisplayStartingFile shows which file a worker picked up.
func (t *TUI) DisplayStartingFile(source m.Source, threadID int) {
	t.send(startFileMsg{thread: threadID, path: string(source.Rel())})
}

// DisplayCompletedFile records a processed file.
func (t *TUI) DisplayCompletedFile(report m.Report) {
	t.send(completedFileMsg{result: newRunResult(report)})
}

// DisplayReports shows saved reports in the results browser.
func (t *TUI) DisplayReports(reports []m.Report) error {
	t.ensureStarted()

	results := make([]runResult, 0, len(reports))
	for _, report := range reports {
		results = append(results, newRunResult(report))
	}

	t.send(reportsMsg{results: results})

	return nil
}

// DisplayDiffs shows unified diffs in a pager.
func (t *TUI) DisplayDiffs(diffs []m.FileDiff) error {
	t.ensureStarted()

	items := make([]diffItem, 0, len(diffs))
	for _, diff := range diffs {
		items = append(items, diffItem{path: string(diff.Path), diff: diff.Diff})
	}

	t.send(diffsMsg{diffs: items})

	return nil
}

func newRunResult(report m.Report) runResult {
	return runResult{
		path:       string(report.Source.Rel()),
		kind:       string(report.Kind),
		injections: len(report.Injections),
		cached:     report.Cached,
		diff:       report.Diff,
		err:        report.Error,
	}
}
