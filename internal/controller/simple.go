package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/butterfly/internal/model"
)

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	hunkColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command

	mu     sync.Mutex
	mode   StartMode
	counts map[m.OutcomeKind]int
	total  int
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd, counts: make(map[m.OutcomeKind]int)}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	cfg := newStartConfig(options...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = cfg.mode
	s.counts = make(map[m.OutcomeKind]int)
	s.total = 0

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {
}

// Wait prints the run summary in instrument mode.
func (s *SimpleUI) Wait() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeInstrument {
		return
	}

	s.printf("\nInstrumented %d file(s): %s\n", s.total, summarizeKinds(s.counts))
}

// DisplayPlan prints the per-file plan as a table.
func (s *SimpleUI) DisplayPlan(plans []m.Plan, err error) error {
	if err != nil {
		s.printf("plan error: %v\n", err)
		return err
	}

	sorted := make([]m.Plan, len(plans))
	copy(sorted, plans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Source.Rel() < sorted[j].Source.Rel()
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Kind", "Component", "Injections"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	injections := 0

	var failures []m.Plan

	for _, plan := range sorted {
		table.Append([]string{string(plan.Source.Rel()), string(plan.Kind), plan.Component, fmt.Sprintf("%d", plan.Injections)})

		injections += plan.Injections

		if plan.Err != nil {
			failures = append(failures, plan)
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		"",
		"",
		fmt.Sprintf("%d", injections),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	for _, plan := range failures {
		s.printf("%s %s: %v\n", failedColor.Sprint("failed"), plan.Source.Rel(), plan.Err)
	}

	return nil
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int) {
	if shardCount > 1 {
		s.printf("Instrumenting with %d worker(s), shard %d/%d\n", threads, shardIndex, shardCount)
		return
	}

	s.printf("Instrumenting with %d worker(s)\n", threads)
}

// DisplayUpcomingFiles shows the number of files about to be processed.
func (s *SimpleUI) DisplayUpcomingFiles(count int) {
	s.printf("Upcoming files: %d\n", count)
}

// DisplayStartingFile is silent; SimpleUI only reports completed files.
func (s *SimpleUI) DisplayStartingFile(_ m.Source, _ int) {
}

// DisplayCompletedFile prints one line per processed file.
func (s *SimpleUI) DisplayCompletedFile(report m.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[report.Kind]++
	s.total++

	line := fmt.Sprintf("%-11s %s", report.Kind, report.Source.Rel())
	if len(report.Injections) > 0 {
		line += fmt.Sprintf(" (%d injection(s))", len(report.Injections))
	}

	if report.Cached {
		line += " [cached]"
	}

	if report.Error != "" {
		line = failedColor.Sprint(line) + ": " + report.Error
	}

	s.printf("%s\n", line)
}

// DisplayReports prints saved reports as a table.
func (s *SimpleUI) DisplayReports(reports []m.Report) error {
	if len(reports) == 0 {
		s.printf("No reports found\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Kind", "Injections", "Output"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	counts := make(map[m.OutcomeKind]int)
	injections := 0

	for _, report := range reports {
		table.Append([]string{
			string(report.Source.Rel()),
			string(report.Kind),
			fmt.Sprintf("%d", len(report.Injections)),
			string(report.Output),
		})

		counts[report.Kind]++
		injections += len(report.Injections)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(reports)),
		"",
		fmt.Sprintf("%d", injections),
		"",
	})

	table.Render()
	s.printf("\n%s\n%s\n", tableBuffer.String(), summarizeKinds(counts))

	return nil
}

// DisplayDiffs prints coloured unified diffs.
func (s *SimpleUI) DisplayDiffs(diffs []m.FileDiff) error {
	if len(diffs) == 0 {
		s.printf("No changes\n")
		return nil
	}

	for _, diff := range diffs {
		for _, line := range strings.Split(strings.TrimRight(diff.Diff, "\n"), "\n") {
			s.printf("%s\n", colorDiffLine(line))
		}

		s.printf("\n")
	}

	return nil
}

func colorDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return headerColor.Sprint(line)
	case strings.HasPrefix(line, "@@"):
		return hunkColor.Sprint(line)
	case strings.HasPrefix(line, "+"):
		return addedColor.Sprint(line)
	case strings.HasPrefix(line, "-"):
		return removedColor.Sprint(line)
	default:
		return line
	}
}

var kindOrder = []m.OutcomeKind{
	m.OutcomeTransformed,
	m.OutcomeEntry,
	m.OutcomeUnchanged,
	m.OutcomeSkipped,
	m.OutcomeFailed,
}

func summarizeKinds(counts map[m.OutcomeKind]int) string {
	parts := make([]string, 0, len(kindOrder))
	for _, kind := range kindOrder {
		parts = append(parts, fmt.Sprintf("%s %d", kind, counts[kind]))
	}

	return strings.Join(parts, ", ")
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
