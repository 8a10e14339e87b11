package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/butterfly/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	color.NoColor = true

	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	return NewSimpleUI(cmd), &buf
}

func testSource(rel string) m.Source {
	return m.Source{Origin: &m.File{Path: m.Path("/proj/src/" + rel)}, Root: "/proj/src"}
}

func assertContains(t *testing.T, output string, wants ...string) {
	t.Helper()

	for _, want := range wants {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayPlan_PrintsTable(t *testing.T) {
	ui, buf := newTestSimpleUI()

	plans := []m.Plan{
		{Source: testSource("b/Counter.tsx"), Kind: m.OutcomeTransformed, Component: "Counter", Injections: 2},
		{Source: testSource("a/main.tsx"), Kind: m.OutcomeEntry},
		{Source: testSource("c/util.ts"), Kind: m.OutcomeSkipped},
	}

	if err := ui.DisplayPlan(plans, nil); err != nil {
		t.Fatalf("DisplayPlan() error = %v", err)
	}

	output := buf.String()

	assertContains(t, output,
		"a/main.tsx",
		"b/Counter.tsx",
		"c/util.ts",
		"Counter",
		"transformed",
		"entry",
		"TOTAL FILES 3",
	)

	if strings.Index(output, "a/main.tsx") > strings.Index(output, "b/Counter.tsx") {
		t.Fatalf("plan rows are not sorted by path\noutput:\n%s", output)
	}
}

func TestSimpleUI_DisplayPlan_ListsFailures(t *testing.T) {
	ui, buf := newTestSimpleUI()

	plans := []m.Plan{
		{Source: testSource("Broken.tsx"), Kind: m.OutcomeFailed, Err: errors.New("read denied")},
	}

	if err := ui.DisplayPlan(plans, nil); err != nil {
		t.Fatalf("DisplayPlan() error = %v", err)
	}

	assertContains(t, buf.String(), "failed Broken.tsx: read denied")
}

func TestSimpleUI_DisplayPlan_Error(t *testing.T) {
	ui, buf := newTestSimpleUI()
	boom := errors.New("boom")

	if err := ui.DisplayPlan(nil, boom); !errors.Is(err, boom) {
		t.Fatalf("DisplayPlan() error = %v, want %v", err, boom)
	}

	assertContains(t, buf.String(), "plan error: boom")
}

func TestSimpleUI_InstrumentRun_PrintsSummary(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.Start(WithInstrumentMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayConcurrencyInfo(4, 1, 3)
	ui.DisplayUpcomingFiles(3)
	ui.DisplayStartingFile(testSource("Counter.tsx"), 0)
	ui.DisplayCompletedFile(m.Report{
		Source:     testSource("Counter.tsx"),
		Kind:       m.OutcomeTransformed,
		Injections: []m.Injection{{Line: 5}, {Line: 9}},
		Cached:     true,
	})
	ui.DisplayCompletedFile(m.Report{Source: testSource("main.tsx"), Kind: m.OutcomeEntry})
	ui.DisplayCompletedFile(m.Report{Source: testSource("Bad.tsx"), Kind: m.OutcomeFailed, Error: "boom"})
	ui.Wait()

	assertContains(t, buf.String(),
		"Instrumenting with 4 worker(s), shard 1/3",
		"Upcoming files: 3",
		"transformed Counter.tsx (2 injection(s)) [cached]",
		"entry       main.tsx",
		"Bad.tsx: boom",
		"Instrumented 3 file(s): transformed 1, entry 1, unchanged 0, skipped 0, failed 1",
	)
}

func TestSimpleUI_DisplayConcurrencyInfo_SingleShard(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ui.DisplayConcurrencyInfo(2, 0, 1)

	if got := buf.String(); got != "Instrumenting with 2 worker(s)\n" {
		t.Fatalf("DisplayConcurrencyInfo() output = %q", got)
	}
}

func TestSimpleUI_Wait_SilentOutsideInstrumentMode(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.Start(WithPlanMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.Wait()
	ui.Close()

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestSimpleUI_Start_ResetsCounts(t *testing.T) {
	ui, buf := newTestSimpleUI()

	_ = ui.Start(WithInstrumentMode())
	ui.DisplayCompletedFile(m.Report{Source: testSource("a.tsx"), Kind: m.OutcomeUnchanged})

	_ = ui.Start(WithInstrumentMode())
	buf.Reset()
	ui.Wait()

	assertContains(t, buf.String(), "Instrumented 0 file(s)")
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	ui, buf := newTestSimpleUI()

	reports := []m.Report{
		{Source: testSource("Counter.tsx"), Kind: m.OutcomeTransformed, Injections: []m.Injection{{Line: 3}}, Output: "/out/Counter.tsx"},
		{Source: testSource("main.tsx"), Kind: m.OutcomeEntry, Output: "/out/main.tsx"},
	}

	if err := ui.DisplayReports(reports); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	assertContains(t, buf.String(),
		"Counter.tsx",
		"/out/main.tsx",
		"TOTAL FILES 2",
		"transformed 1, entry 1, unchanged 0, skipped 0, failed 0",
	)
}

func TestSimpleUI_DisplayReports_Empty(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayReports(nil); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	if got := buf.String(); got != "No reports found\n" {
		t.Fatalf("DisplayReports() output = %q", got)
	}
}

func TestSimpleUI_DisplayDiffs(t *testing.T) {
	ui, buf := newTestSimpleUI()

	diffs := []m.FileDiff{{
		Path: "Counter.tsx",
		Diff: "--- a/Counter.tsx\n+++ b/Counter.tsx\n@@ -1,1 +1,1 @@\n-setCount(1);\n+__trackStateUpdate(); setCount(1);\n",
	}}

	if err := ui.DisplayDiffs(diffs); err != nil {
		t.Fatalf("DisplayDiffs() error = %v", err)
	}

	assertContains(t, buf.String(),
		"--- a/Counter.tsx",
		"@@ -1,1 +1,1 @@",
		"+__trackStateUpdate(); setCount(1);",
	)
}

func TestSimpleUI_DisplayDiffs_Empty(t *testing.T) {
	ui, buf := newTestSimpleUI()

	if err := ui.DisplayDiffs(nil); err != nil {
		t.Fatalf("DisplayDiffs() error = %v", err)
	}

	if got := buf.String(); got != "No changes\n" {
		t.Fatalf("DisplayDiffs() output = %q", got)
	}
}

func TestSummarizeKinds(t *testing.T) {
	got := summarizeKinds(map[m.OutcomeKind]int{m.OutcomeSkipped: 4, m.OutcomeTransformed: 2})
	want := "transformed 2, entry 0, unchanged 0, skipped 4, failed 0"

	if got != want {
		t.Fatalf("summarizeKinds() = %q, want %q", got, want)
	}
}
