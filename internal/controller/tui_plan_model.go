package controller

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// planDelegate renders one plan row: injections, kind, path.
type planDelegate struct {
	offset int
}

func (d planDelegate) Height() int  { return 1 }
func (d planDelegate) Spacing() int { return 0 }
func (d planDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d planDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	plan, ok := item.(planItem)
	if !ok {
		return
	}

	width := m.Width() - 22 // count (6) + kind (12) + spacing (4)

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true).Width(6).Align(lipgloss.Right)
	kindStyle := lipgloss.NewStyle().Foreground(kindColor(plan.kind)).Width(12)
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	displayPath := truncateToWidth(plan.path, width)

	if index == m.Index() {
		selected := lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accentColor).Bold(true)
		countStyle = selected.Width(6).Align(lipgloss.Right)
		kindStyle = selected.Width(12)
		pathStyle = selected
		displayPath = animateScroll(plan.path, width, d.offset)
	}

	line := fmt.Sprintf("%s  %s  %s",
		countStyle.Render(fmt.Sprintf("%d", plan.injections)),
		kindStyle.Render(plan.kind),
		pathStyle.Render(displayPath),
	)
	_, _ = fmt.Fprint(w, line)
}

// planModel lists what an instrument run would do, per file.
type planModel struct {
	width        int
	height       int
	fileList     list.Model
	delegate     planDelegate
	injections   int
	files        int
	transformed  int
	failed       int
	err          error
	rendered     bool
	animOffset   int
	lastSelected int
}

func newPlanModel() planModel {
	delegate := planDelegate{}
	fileList := list.New([]list.Item{}, delegate, 80, 20)
	fileList.SetShowPagination(false)
	fileList.SetShowFilter(true)
	fileList.SetShowHelp(false)
	fileList.SetShowTitle(false)
	fileList.SetShowStatusBar(false)
	fileList.FilterInput.Placeholder = "Filter by path or kind…"

	return planModel{
		fileList:     fileList,
		delegate:     delegate,
		lastSelected: -1,
	}
}

func (m planModel) Init() tea.Cmd {
	return tick(time.Second / 2)
}

func (m planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetWidth(m.width)

	case tickMsg:
		if m.fileList.FilterState() != list.Filtering && m.rendered {
			m.animOffset++
			m.delegate.offset = m.animOffset
			m.fileList.SetDelegate(m.delegate)
		}

		return m, tick(time.Millisecond * 150)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			m.fileList, cmd = m.fileList.Update(msg)

			if m.fileList.Index() != m.lastSelected {
				m.lastSelected = m.fileList.Index()
				m.animOffset = 0
				m.delegate.offset = 0
				m.fileList.SetDelegate(m.delegate)
			}

			return m, cmd
		}

	case planMsg:
		m = m.handlePlanMsg(msg)
	}

	return m, cmd
}

func (m planModel) handlePlanMsg(msg planMsg) planModel {
	m.err = msg.err
	m.files = len(msg.items)
	m.injections, m.transformed, m.failed = 0, 0, 0

	items := make([]list.Item, 0, len(msg.items))

	for _, item := range msg.items {
		m.injections += item.injections

		switch item.kind {
		case "transformed":
			m.transformed++
		case "failed":
			m.failed++
		}

		items = append(items, item)
	}

	m.fileList.SetItems(items)
	m.rendered = true

	if len(items) > 0 && m.lastSelected == -1 {
		m.lastSelected = 0
	}

	return m
}

func (m planModel) View() string {
	if !m.rendered {
		return "Scanning sources…\n"
	}

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)
	title := titleStyle().Render(planTitle)

	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 0, 1, 2)

		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			errStyle.Render(fmt.Sprintf("plan error: %v", m.err)),
			footerStyle(m.width).Render("q quit"),
		)
	}

	summary := summaryStyle().Render(fmt.Sprintf(
		"Injections: %s   Files: %s   Transformed: %s   Failed: %s",
		accentStyle.Render(fmt.Sprintf("%d", m.injections)),
		accentStyle.Render(fmt.Sprintf("%d", m.files)),
		accentStyle.Render(fmt.Sprintf("%d", m.transformed)),
		accentStyle.Render(fmt.Sprintf("%d", m.failed)),
	))

	footer := footerStyle(m.width).Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		m.renderTable(),
		footer,
	)
}

func (m planModel) renderTable() string {
	// Title (2) + summary (2) + footer (1) + border (2) + headers (2).
	listHeight := m.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	// Margin (2) + border (2) + padding (2).
	listWidth := m.width - 6
	if listWidth < 20 {
		listWidth = 20
	}

	m.fileList.SetHeight(listHeight)
	m.fileList.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%6s  %-12s  %s", "Inj.", "Kind", "File Path"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			m.fileList.View(),
		),
	)
}
