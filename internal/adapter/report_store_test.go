package adapter

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/butterfly/internal/model"
)

func testReport(path string, kind m.OutcomeKind, injections int) m.Report {
	report := m.Report{
		RunID:     "run-1",
		Source:    m.Source{Origin: &m.File{Path: m.Path(path), Hash: "hash-" + filepath.Base(path)}, Root: "/abs"},
		Kind:      kind,
		Component: "App",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	for i := range injections {
		report.Injections = append(report.Injections, m.Injection{Line: 10 + i, Column: 4, Component: "App", Updater: "setCount"})
	}

	return report
}

func TestLocalReportStore_SaveReports_WritesHashedYAMLPerReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &LocalReportStore{}

	report := testReport("/abs/src/App.tsx", m.OutcomeTransformed, 2)
	report.Updaters = []string{"setCount"}
	report.Diff = "--- a/src/App.tsx\n+++ b/src/App.tsx\n"

	data, err := yaml.Marshal(report)
	require.NoError(t, err)

	expectedHash := rs.computeReportHash(data)
	require.NoError(t, rs.SaveReports(m.Path(dir), []m.Report{report}))

	expectedFile := filepath.Join(dir, expectedHash+".yaml")
	info, err := os.Stat(expectedFile)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}\.yaml$`), filepath.Base(expectedFile))

	var decoded m.Report
	require.NoError(t, yaml.Unmarshal(readFileBytes(t, expectedFile), &decoded))

	require.NotNil(t, decoded.Source.Origin)
	assert.Equal(t, "hash-App.tsx", decoded.Source.Origin.Hash)
	assert.Equal(t, m.OutcomeTransformed, decoded.Kind)
	assert.Len(t, decoded.Injections, 2)
	assert.Equal(t, report.Diff, decoded.Diff)
	assert.True(t, report.CreatedAt.Equal(decoded.CreatedAt))
}

func TestLocalReportStore_SaveReports_EmptyPath_ReturnsError(t *testing.T) {
	t.Parallel()

	rs := &LocalReportStore{}
	assert.Error(t, rs.SaveReports("", []m.Report{testReport("/abs/a.tsx", m.OutcomeSkipped, 0)}))
}

func TestLocalReportStore_LoadReports_SortsByPathAndSkipsIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &LocalReportStore{}

	reports := []m.Report{
		testReport("/abs/src/b.tsx", m.OutcomeUnchanged, 0),
		testReport("/abs/src/a.tsx", m.OutcomeTransformed, 1),
	}

	require.NoError(t, rs.SaveReports(m.Path(dir), reports))
	require.NoError(t, rs.RegenerateIndex(m.Path(dir)))

	loaded, err := rs.LoadReports(m.Path(dir))
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, m.Path("/abs/src/a.tsx"), loaded[0].Source.Origin.Path)
	assert.Equal(t, m.Path("/abs/src/b.tsx"), loaded[1].Source.Origin.Path)
}

func TestLocalReportStore_LoadReports_NoReportsDir_ReturnsEmpty(t *testing.T) {
	t.Parallel()

	rs := &LocalReportStore{}

	loaded, err := rs.LoadReports(m.Path(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLocalReportStore_LoadReports_PathIsFile_ReturnsError(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "reports")
	writeTestFile(t, file, "not a dir")

	rs := &LocalReportStore{}

	_, err := rs.LoadReports(m.Path(file))
	assert.Error(t, err)
}

func TestLocalReportStore_LoadReports_InvalidYAML_ReturnsError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "broken.yaml"), "kind: [unterminated\n")

	rs := &LocalReportStore{}

	_, err := rs.LoadReports(m.Path(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLocalReportStore_RegenerateIndex_WritesTotals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &LocalReportStore{}

	reports := []m.Report{
		testReport("/abs/src/App.tsx", m.OutcomeTransformed, 2),
		testReport("/abs/src/main.tsx", m.OutcomeEntry, 0),
		testReport("/abs/src/Static.tsx", m.OutcomeUnchanged, 0),
		testReport("/abs/src/format.js", m.OutcomeSkipped, 0),
		testReport("/abs/src/Broken.tsx", m.OutcomeFailed, 0),
	}

	require.NoError(t, rs.SaveReports(m.Path(dir), reports))
	require.NoError(t, rs.RegenerateIndex(m.Path(dir)))

	var idx indexEntry
	require.NoError(t, yaml.Unmarshal(readFileBytes(t, filepath.Join(dir, indexFileName)), &idx))

	assert.Equal(t, 5, idx.TotalFiles)
	assert.Equal(t, 1, idx.Transformed)
	assert.Equal(t, 1, idx.Entries)
	assert.Equal(t, 1, idx.Unchanged)
	assert.Equal(t, 1, idx.Skipped)
	assert.Equal(t, 1, idx.Failed)
	assert.Equal(t, 2, idx.Injections)

	require.Len(t, idx.Files, 5)
	assert.Equal(t, m.Path("/abs/src/App.tsx"), idx.Files[0].Path)
	assert.Equal(t, 2, idx.Files[0].Injections)
	assert.FileExists(t, filepath.Join(dir, idx.Files[0].Report))
}

func TestLocalReportStore_CleanReports_DeletesOnlySelectedAndRegeneratesIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &LocalReportStore{}

	keep := testReport("/abs/src/keep.tsx", m.OutcomeTransformed, 1)
	drop := testReport("/abs/src/drop.tsx", m.OutcomeTransformed, 3)

	require.NoError(t, rs.SaveReports(m.Path(dir), []m.Report{keep, drop}))
	require.NoError(t, rs.RegenerateIndex(m.Path(dir)))

	require.NoError(t, rs.CleanReports(m.Path(dir), []m.Source{drop.Source, {}}))

	loaded, err := rs.LoadReports(m.Path(dir))
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, keep.Source.Origin.Path, loaded[0].Source.Origin.Path)

	var idx indexEntry
	require.NoError(t, yaml.Unmarshal(readFileBytes(t, filepath.Join(dir, indexFileName)), &idx))
	assert.Equal(t, 1, idx.TotalFiles)
	assert.Equal(t, 1, idx.Injections)
}

func TestLocalReportStore_CleanReports_DeleteAll_RemovesIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	rs := &LocalReportStore{}

	require.NoError(t, rs.SaveReports(m.Path(dir), []m.Report{
		testReport("/abs/src/a.tsx", m.OutcomeTransformed, 1),
		testReport("/abs/src/b.tsx", m.OutcomeSkipped, 0),
	}))
	require.NoError(t, rs.RegenerateIndex(m.Path(dir)))
	require.FileExists(t, filepath.Join(dir, indexFileName))

	require.NoError(t, rs.CleanReports(m.Path(dir), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalReportStore_CleanReports_NoReportsDir_NoError(t *testing.T) {
	t.Parallel()

	rs := &LocalReportStore{}
	assert.NoError(t, rs.CleanReports(m.Path(filepath.Join(t.TempDir(), "missing")), nil))
}

func TestLocalReportStore_CleanReports_EmptyPath_ReturnsError(t *testing.T) {
	t.Parallel()

	rs := &LocalReportStore{}
	assert.Error(t, rs.CleanReports("", nil))
}
