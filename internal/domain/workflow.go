package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/butterfly/internal/adapter"
	"github.com/mouse-blink/butterfly/internal/controller"
	m "github.com/mouse-blink/butterfly/internal/model"
)

var (
	// ErrNoDestination is returned when an instrument run has nowhere to write.
	ErrNoDestination = errors.New("no destination: pass --out <dir> or --write")
	// ErrConflictingDestination is returned when both an output directory and
	// in-place writing are requested.
	ErrConflictingDestination = errors.New("--out and --write are mutually exclusive")
	// ErrOutputCollision is returned when two sources would be written to the
	// same file below the output directory.
	ErrOutputCollision = errors.New("output path collision")
)

// ListArgs selects the sources of a run.
type ListArgs struct {
	Paths    []m.Path
	Exclude  []string
	UseCache bool
}

// InstrumentArgs configures an instrument run.
type InstrumentArgs struct {
	ListArgs
	// Out receives the instrumented files, mirroring their position under
	// the scan root. Unchanged files are not copied.
	Out     m.Path
	InPlace bool
	Reports m.Path
	Threads int

	ShardIndex      int
	TotalShardCount int
}

// ViewArgs configures report viewing.
type ViewArgs struct {
	Reports m.Path
}

// DiffArgs configures diff rendering.
type DiffArgs struct {
	ListArgs
	Context int
}

// Workflow defines the commands of the instrumentation tool.
type Workflow interface {
	List(args ListArgs) error
	Instrument(args InstrumentArgs) error
	View(args ViewArgs) error
	Diff(args DiffArgs) error
}

type workflow struct {
	fs           adapter.SourceFSAdapter
	store        adapter.ReportStore
	ui           controller.UI
	instrumenter Instrumenter
	logger       *log.Logger

	now      func() time.Time
	newRunID func() string
}

// NewWorkflow creates a new Workflow instance with the provided collaborators.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	store adapter.ReportStore,
	ui controller.UI,
	instrumenter Instrumenter,
	logger *log.Logger,
) Workflow {
	return &workflow{
		fs:           fs,
		store:        store,
		ui:           ui,
		instrumenter: instrumenter,
		logger:       logger,
		now:          time.Now,
		newRunID:     uuid.NewString,
	}
}

// List shows what an instrument run would do to every selected source.
func (w *workflow) List(args ListArgs) error {
	if err := w.ui.Start(controller.WithPlanMode()); err != nil {
		return err
	}

	plans, err := w.plan(args)
	if err != nil {
		_ = w.ui.DisplayPlan(nil, err)
		w.ui.Close()

		return err
	}

	if err := w.ui.DisplayPlan(plans, nil); err != nil {
		w.ui.Close()

		return err
	}

	w.ui.Wait()

	return nil
}

func (w *workflow) plan(args ListArgs) ([]m.Plan, error) {
	sources, err := w.fs.Get(args.Paths, args.Exclude)
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}

	plans := make([]m.Plan, 0, len(sources))

	for _, source := range sources {
		plan := m.Plan{Source: source}

		outcome, err := w.instrumenter.Process(source, args.UseCache)
		if err != nil {
			plan.Kind = m.OutcomeFailed
			plan.Err = err
			plans = append(plans, plan)

			continue
		}

		plan.Kind = outcome.Outcome.Kind
		plan.Err = outcome.Outcome.Err

		if result := outcome.Outcome.Result; result != nil {
			plan.Component = result.Component
			plan.Injections = len(result.Injections)
		}

		plans = append(plans, plan)
	}

	return plans, nil
}

// Instrument rewrites every selected source and records one report per file.
func (w *workflow) Instrument(args InstrumentArgs) error {
	switch {
	case args.Out == "" && !args.InPlace:
		return ErrNoDestination
	case args.Out != "" && args.InPlace:
		return ErrConflictingDestination
	}

	sources, err := w.fs.Get(args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("collect sources: %w", err)
	}

	var out m.Path

	if args.Out != "" {
		out, err = w.fs.Abs(args.Out)
		if err != nil {
			return fmt.Errorf("resolve output dir: %w", err)
		}

		if err := checkOutputDir(out, sources); err != nil {
			return err
		}

		if err := checkOutputTargets(sources); err != nil {
			return err
		}
	}

	sources = shardSources(sources, args.ShardIndex, args.TotalShardCount)

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	runID := w.newRunID()

	w.logger.Info().Str("run_id", runID).Int("files", len(sources)).Int("threads", threads).Msg("instrument run started")

	if err := w.ui.Start(controller.WithInstrumentMode()); err != nil {
		return err
	}

	w.ui.DisplayConcurrencyInfo(threads, args.ShardIndex, max(args.TotalShardCount, 1))
	w.ui.DisplayUpcomingFiles(len(sources))

	reports, err := w.instrumentAll(sources, args, out, threads, runID)
	if err != nil {
		w.ui.Close()

		return err
	}

	if err := w.saveReports(args.Reports, sources, reports); err != nil {
		w.ui.Close()

		return err
	}

	w.logger.Info().Str("run_id", runID).Msg("instrument run finished")
	w.ui.Wait()

	return nil
}

func (w *workflow) instrumentAll(sources []m.Source, args InstrumentArgs, out m.Path, threads int, runID string) ([]m.Report, error) {
	reports := make([]m.Report, len(sources))

	slots := make(chan int, threads)
	for i := range threads {
		slots <- i
	}

	var g errgroup.Group

	g.SetLimit(threads)

	for i, source := range sources {
		g.Go(func() error {
			thread := <-slots
			defer func() { slots <- thread }()

			w.ui.DisplayStartingFile(source, thread)

			report, err := w.instrumentFile(source, args.UseCache, args.InPlace, out, runID)
			if err != nil {
				return err
			}

			reports[i] = report
			w.ui.DisplayCompletedFile(report)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// instrumentFile processes one source. Pipeline and read failures end up in
// the report; only write failures abort the run.
func (w *workflow) instrumentFile(source m.Source, useCache, inPlace bool, out m.Path, runID string) (m.Report, error) {
	report := m.Report{
		RunID:     runID,
		Source:    source,
		CreatedAt: w.now(),
	}

	outcome, err := w.instrumenter.Process(source, useCache)
	if err != nil {
		w.logger.Warn().Err(err).Str("file", string(source.Rel())).Msg("instrumentation failed")

		report.Kind = m.OutcomeFailed
		report.Error = err.Error()

		return report, nil
	}

	report.Kind = outcome.Outcome.Kind
	report.Cached = outcome.Cached

	if outcome.Outcome.Err != nil {
		report.Error = outcome.Outcome.Err.Error()
	}

	if !outcome.Outcome.Changed() {
		return report, nil
	}

	result := outcome.Outcome.Result
	report.Component = result.Component
	report.Updaters = result.Updaters
	report.Injections = result.Injections

	rel := source.Rel()

	diff, err := UnifiedDiff(filepath.ToSlash(string(rel)), string(outcome.Original), result.Code, DefaultDiffContext)
	if err != nil {
		return report, err
	}

	report.Diff = diff

	target := source.Origin.Path
	if !inPlace {
		target = w.fs.JoinPath(string(out), string(rel))
	}

	if err := w.fs.WriteFile(target, []byte(result.Code), 0o644); err != nil {
		return report, fmt.Errorf("write %s: %w", target, err)
	}

	report.Output = target

	w.logger.Debug().Str("file", string(rel)).Str("output", string(target)).Int("injections", len(result.Injections)).Msg("file written")

	return report, nil
}

func (w *workflow) saveReports(dir m.Path, sources []m.Source, reports []m.Report) error {
	if dir == "" {
		return nil
	}

	if err := w.store.CleanReports(dir, sources); err != nil {
		return fmt.Errorf("clean reports: %w", err)
	}

	if err := w.store.SaveReports(dir, reports); err != nil {
		return fmt.Errorf("save reports: %w", err)
	}

	if err := w.store.RegenerateIndex(dir); err != nil {
		return fmt.Errorf("regenerate report index: %w", err)
	}

	return nil
}

// View displays the reports saved by earlier instrument runs.
func (w *workflow) View(args ViewArgs) error {
	reports, err := w.store.LoadReports(args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	if err := w.ui.Start(controller.WithViewMode()); err != nil {
		return err
	}

	if err := w.ui.DisplayReports(reports); err != nil {
		w.ui.Close()

		return err
	}

	w.ui.Wait()

	return nil
}

// Diff displays the changes an instrument run would make, without writing.
func (w *workflow) Diff(args DiffArgs) error {
	sources, err := w.fs.Get(args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("collect sources: %w", err)
	}

	diffs := make([]m.FileDiff, 0, len(sources))

	for _, source := range sources {
		outcome, err := w.instrumenter.Process(source, args.UseCache)
		if err != nil {
			w.logger.Warn().Err(err).Str("file", string(source.Rel())).Msg("instrumentation failed")

			continue
		}

		if !outcome.Outcome.Changed() {
			continue
		}

		rel := filepath.ToSlash(string(source.Rel()))

		diff, err := UnifiedDiff(rel, string(outcome.Original), outcome.Outcome.Result.Code, args.Context)
		if err != nil {
			return err
		}

		diffs = append(diffs, m.FileDiff{Path: m.Path(rel), Diff: diff})
	}

	if err := w.ui.Start(controller.WithDiffMode()); err != nil {
		return err
	}

	if err := w.ui.DisplayDiffs(diffs); err != nil {
		w.ui.Close()

		return err
	}

	w.ui.Wait()

	return nil
}

// checkOutputDir rejects output directories inside a scan root, which would
// be picked up again by the next run.
func checkOutputDir(out m.Path, sources []m.Source) error {
	seen := make(map[m.Path]struct{})

	for _, source := range sources {
		if source.Root == "" {
			continue
		}

		if _, ok := seen[source.Root]; ok {
			continue
		}

		seen[source.Root] = struct{}{}

		rel, err := filepath.Rel(string(source.Root), string(out))
		if err != nil {
			continue
		}

		if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		if insideSkippedDir(rel) {
			continue
		}

		return fmt.Errorf("output dir %s is inside source root %s", out, source.Root)
	}

	return nil
}

// insideSkippedDir reports whether rel passes through a directory the
// source walk never enters.
func insideSkippedDir(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if adapter.IsSkippedDir(part) {
			return true
		}
	}

	return false
}

// checkOutputTargets rejects runs where sources from different scan roots
// share a relative path and would overwrite each other below --out.
func checkOutputTargets(sources []m.Source) error {
	owners := make(map[string]m.Path, len(sources))

	for _, source := range sources {
		if source.Origin == nil {
			continue
		}

		rel := filepath.Clean(string(source.Rel()))

		if owner, ok := owners[rel]; ok && owner != source.Origin.Path {
			return fmt.Errorf("%w: %s and %s both map to %s", ErrOutputCollision, owner, source.Origin.Path, filepath.ToSlash(rel))
		}

		owners[rel] = source.Origin.Path
	}

	return nil
}

// shardSources keeps the sources of one shard. Sources are ordered by path
// first so every shard sees the same assignment.
func shardSources(sources []m.Source, index, total int) []m.Source {
	if total <= 1 {
		return sources
	}

	sorted := make([]m.Source, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Origin.Path < sorted[j].Origin.Path
	})

	shard := make([]m.Source, 0, len(sorted)/total+1)

	for i, source := range sorted {
		if i%total == index {
			shard = append(shard, source)
		}
	}

	return shard
}
