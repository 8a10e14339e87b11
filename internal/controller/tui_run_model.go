package controller

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// runResultDelegate renders one processed file in the results list.
type runResultDelegate struct {
	offset int
}

func (d runResultDelegate) Height() int  { return 1 }
func (d runResultDelegate) Spacing() int { return 0 }
func (d runResultDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d runResultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	result, ok := item.(runResult)
	if !ok {
		return
	}

	fileWidth := m.Width() - 30 // kind, injections and cache columns plus spacing

	kindStyle := lipgloss.NewStyle().Foreground(kindColor(result.kind)).Bold(true).Width(12)
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(6).Align(lipgloss.Right)
	cacheStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(6)
	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	displayFile := truncateToWidth(result.path, fileWidth)

	if index == m.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accentColor).Bold(true)
		kindStyle = selected.Width(12)
		countStyle = selected.Width(6).Align(lipgloss.Right)
		cacheStyle = selected.Width(6)
		fileStyle = selected
		displayFile = animateScroll(result.path, fileWidth, d.offset)
	}

	cached := ""
	if result.cached {
		cached = "cache"
	}

	line := fmt.Sprintf("%s  %s  %s  %s",
		kindStyle.Render(result.kind),
		countStyle.Render(fmt.Sprintf("%d", result.injections)),
		cacheStyle.Render(cached),
		fileStyle.Render(displayFile),
	)
	_, _ = fmt.Fprint(w, line)
}

// runModel follows an instrument run and then lets the user browse the
// results and their diffs. It also browses saved reports.
type runModel struct {
	title            string
	width            int
	height           int
	progressBar      progress.Model
	totalFiles       int
	completedCount   int
	progressPercent  float64
	threads          int
	shardIndex       int
	totalShards      int
	threadFiles      map[int]string
	rendered         bool
	finished         bool
	results          []runResult
	resultsList      list.Model
	delegate         runResultDelegate
	animOffset       int
	lastSelected     int
	showDiff         bool
	selectedDiff     string
	selectedDiffPath string
}

func newRunModel(title string) runModel {
	prog := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)

	delegate := runResultDelegate{}
	resultsList := list.New([]list.Item{}, delegate, 80, 20)
	resultsList.SetShowPagination(false)
	resultsList.SetShowFilter(true)
	resultsList.SetShowHelp(false)
	resultsList.SetShowTitle(false)
	resultsList.SetShowStatusBar(false)
	resultsList.FilterInput.Placeholder = "Filter results…"

	return runModel{
		title:        title,
		progressBar:  prog,
		resultsList:  resultsList,
		delegate:     delegate,
		threads:      1,
		totalShards:  1,
		threadFiles:  make(map[int]string),
		lastSelected: -1,
	}
}

func (m runModel) Init() tea.Cmd {
	return tick(time.Millisecond * 100)
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.handleWindowSize(msg)

	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)

	case tea.MouseMsg:
		m, cmd = m.handleMouseMsg(msg)

	case tickMsg:
		return m.handleTickMsg(msg)

	case concurrencyMsg:
		m.threads = max(msg.threads, 1)
		m.shardIndex = msg.shardIndex
		m.totalShards = max(msg.shards, 1)

	case upcomingMsg:
		m.totalFiles = msg.count
		m.completedCount = 0
		m.progressPercent = 0
		m.rendered = true
		m.finished = msg.count == 0

	case startFileMsg:
		m.threadFiles[msg.thread] = msg.path
		m.rendered = true

	case completedFileMsg:
		m = m.handleCompletedFile(msg)

	case reportsMsg:
		m = m.handleReports(msg)
	}

	return m, cmd
}

func (m runModel) handleCompletedFile(msg completedFileMsg) runModel {
	for thread, path := range m.threadFiles {
		if path == msg.result.path {
			delete(m.threadFiles, thread)
		}
	}

	m.completedCount++
	m.results = append(m.results, msg.result)
	m = m.syncItems()

	if m.totalFiles > 0 {
		m.progressPercent = float64(m.completedCount) / float64(m.totalFiles)
		if m.completedCount >= m.totalFiles {
			m.finished = true
		}
	}

	m.rendered = true

	return m
}

func (m runModel) handleReports(msg reportsMsg) runModel {
	m.results = append([]runResult(nil), msg.results...)
	m.totalFiles = len(m.results)
	m.completedCount = len(m.results)
	m.progressPercent = 1
	m.finished = true
	m.rendered = true

	return m.syncItems()
}

func (m runModel) syncItems() runModel {
	items := make([]list.Item, 0, len(m.results))
	for _, r := range m.results {
		items = append(items, r)
	}

	m.resultsList.SetItems(items)

	return m
}

func (m runModel) View() string {
	if !m.rendered {
		return "Preparing instrumentation…\n"
	}

	if m.finished {
		return m.viewResults()
	}

	return m.viewProgress()
}

func (m runModel) viewProgress() string {
	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	title := titleStyle().Render(m.title)

	summary := summaryStyle().Render(fmt.Sprintf(
		"Progress: %s / %s  •  Threads: %s  •  Shard: %s / %s",
		accentStyle.Render(fmt.Sprintf("%d", m.completedCount)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalFiles)),
		accentStyle.Render(fmt.Sprintf("%d", m.threads)),
		accentStyle.Render(fmt.Sprintf("%d", m.shardIndex)),
		accentStyle.Render(fmt.Sprintf("%d", m.totalShards)),
	))

	progressView := lipgloss.NewStyle().Padding(0, 2).Render(m.progressBar.ViewAs(m.progressPercent))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		progressView,
		m.renderThreadBox(),
		footerStyle(m.width).Render("Press q to quit"),
	)
}

func (m runModel) renderThreadBox() string {
	contentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Margin(1, 1, 1, 0).
		Width(max(m.width-4, 20))

	fileStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// Width - border (2) - padding (2) - margin.
	availableWidth := max(m.width-8, 10)

	digits := len(fmt.Sprintf("%d", max(m.threads-1, 0)))
	labelFormat := fmt.Sprintf("Thread %%%dd: %%s", digits)
	prefixWidth := 7 + digits + 2

	lines := make([]string, 0, m.threads)

	for i := range m.threads {
		content := "idle"
		if file := m.threadFiles[i]; file != "" {
			content = fileStyle.Render(truncateToWidth(file, max(availableWidth-prefixWidth, 10)))
		}

		if m.threads > 1 {
			content = fmt.Sprintf(labelFormat, i, content)
		}

		lines = append(lines, content)
	}

	return contentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m runModel) viewResults() string {
	accentStyle := lipgloss.NewStyle().Foreground(accentColor)

	name := resultsTitle
	if m.title == reportsTitle {
		name = reportsTitle
	}

	title := titleStyle().Render(name)

	summary := summaryStyle().Render(fmt.Sprintf(
		"Files: %s  •  Transformed: %s  •  Entries: %s  •  Injections: %s  •  Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", len(m.results))),
		accentStyle.Render(fmt.Sprintf("%d", m.countKind("transformed"))),
		accentStyle.Render(fmt.Sprintf("%d", m.countKind("entry"))),
		accentStyle.Render(fmt.Sprintf("%d", m.totalInjections())),
		accentStyle.Render(fmt.Sprintf("%d", m.countKind("failed"))),
	))

	footer := footerStyle(m.width).Render("↑/k up • ↓/j down • g/G top/bottom • / filter • enter/space/click diff • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		m.renderResultsBox(),
		footer,
	)
}

func (m runModel) renderResultsBox() string {
	listWidth := max(m.width-4, 20)

	listHeight := m.height - 9 - m.diffBoxHeight()
	if listHeight < 5 {
		listHeight = 5
	}

	m.resultsList.SetHeight(listHeight)
	m.resultsList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%-12s  %6s  %-6s  %s", "Kind", "Inj.", "", "File"))

	resultsStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1, 0, 0).
		Padding(0, 1)

	resultsBox := resultsStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.resultsList.View(),
		),
	)

	diffBox := m.renderDiffBox(listWidth)
	if diffBox == "" {
		return resultsBox
	}

	return lipgloss.JoinVertical(lipgloss.Left, resultsBox, diffBox)
}

func (m runModel) countKind(kind string) int {
	count := 0

	for _, result := range m.results {
		if result.kind == kind {
			count++
		}
	}

	return count
}

func (m runModel) totalInjections() int {
	total := 0
	for _, result := range m.results {
		total += result.injections
	}

	return total
}

func (m runModel) handleKeyMsg(msg tea.KeyMsg) (runModel, tea.Cmd) {
	var cmd tea.Cmd

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.finished && m.resultsList.FilterState() == list.Filtering {
		m.resultsList, cmd = m.resultsList.Update(msg)
		return m, cmd
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	if !m.finished {
		return m, nil
	}

	switch msg.String() {
	case "enter", " ", "space":
		m.toggleSelectedDiff()
		return m, nil
	}

	m.resultsList, cmd = m.resultsList.Update(msg)
	m.resetSelection()

	return m, cmd
}

func (m runModel) handleMouseMsg(msg tea.MouseMsg) (runModel, tea.Cmd) {
	var cmd tea.Cmd

	if !m.finished {
		return m, nil
	}

	m.resultsList, cmd = m.resultsList.Update(msg)
	m.resetSelection()

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease && m.resultsList.FilterState() != list.Filtering {
		m.toggleSelectedDiff()
	}

	return m, cmd
}

// resetSelection restarts the scroll animation and hides the diff when the
// selected row changed.
func (m *runModel) resetSelection() {
	if m.resultsList.Index() == m.lastSelected {
		return
	}

	m.lastSelected = m.resultsList.Index()
	m.animOffset = 0
	m.delegate.offset = 0
	m.resultsList.SetDelegate(m.delegate)
	m.showDiff = false
	m.selectedDiff = ""
	m.selectedDiffPath = ""
}

func (m *runModel) toggleSelectedDiff() {
	result, ok := m.resultsList.SelectedItem().(runResult)
	if !ok {
		return
	}

	diff := strings.TrimSpace(result.diff)
	if diff == "" && result.err != "" {
		diff = "error: " + result.err
	}

	if diff == "" || (m.showDiff && m.selectedDiff == diff) {
		m.showDiff = false
		m.selectedDiff = ""
		m.selectedDiffPath = ""

		return
	}

	m.showDiff = true
	m.selectedDiff = diff
	m.selectedDiffPath = result.path
}

func (m runModel) diffMaxLines() int {
	return min(max(m.height/3, 6), 20)
}

func (m runModel) diffBoxHeight() int {
	if !m.showDiff || m.selectedDiff == "" {
		return 0
	}

	return min(len(strings.Split(m.selectedDiff, "\n")), m.diffMaxLines()) + 3
}

func (m runModel) renderDiffBox(width int) string {
	if !m.showDiff || m.selectedDiff == "" {
		return ""
	}

	lines := strings.Split(m.selectedDiff, "\n")
	maxLines := m.diffMaxLines()
	truncated := false

	if len(lines) > maxLines {
		lines = lines[:maxLines-1]
		truncated = true
	}

	contentWidth := max(width-4, 10)

	bodyLines := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		bodyLines = append(bodyLines, renderDiffLine(line, contentWidth))
	}

	if truncated {
		bodyLines = append(bodyLines, "…")
	}

	headerText := "Diff"
	if m.selectedDiffPath != "" {
		headerText = fmt.Sprintf("Diff • %s", m.selectedDiffPath)
	}

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Render(truncateToWidth(headerText, contentWidth))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1, 0, 0).
		Padding(0, 1).
		Width(width)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinVertical(lipgloss.Left, bodyLines...)))
}

func (m runModel) handleWindowSize(msg tea.WindowSizeMsg) runModel {
	m.width = msg.Width
	m.height = msg.Height
	m.progressBar.Width = max(m.width-8, 20)

	return m
}

func (m runModel) handleTickMsg(_ tickMsg) (runModel, tea.Cmd) {
	if m.finished && m.resultsList.FilterState() != list.Filtering {
		m.animOffset++
		m.delegate.offset = m.animOffset
		m.resultsList.SetDelegate(m.delegate)
	}

	return m, tick(time.Millisecond * 150)
}
