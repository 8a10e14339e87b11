package controller

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// diffModel pages through the unified diffs of every changed file.
type diffModel struct {
	lines    []string
	files    int
	rendered bool
	height   int
	width    int
	offset   int // Current scroll offset
}

func newDiffModel() diffModel {
	return diffModel{}
}

func (dm diffModel) Init() tea.Cmd {
	return nil
}

func (dm diffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		dm.height = msg.Height
		dm.width = msg.Width
		dm.offset = min(dm.offset, dm.maxOffset())

		return dm, nil

	case diffsMsg:
		dm.lines = nil
		dm.files = len(msg.diffs)

		for _, d := range msg.diffs {
			dm.lines = append(dm.lines, strings.Split(strings.TrimRight(d.diff, "\n"), "\n")...)
		}

		dm.offset = 0
		dm.rendered = true

		return dm, nil

	case tea.KeyMsg:
		return dm.handleKeyPress(msg)
	}

	return dm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (dm diffModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return dm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		return dm, tea.Quit

	case "down", "j":
		dm.offset = min(dm.offset+1, dm.maxOffset())

	case "up", "k":
		dm.offset = max(dm.offset-1, 0)

	case "g", "home":
		dm.offset = 0

	case "G", "end":
		dm.offset = dm.maxOffset()

	case "d", "pgdown":
		dm.offset = min(dm.offset+dm.itemsPerPage(), dm.maxOffset())

	case "u", "pgup":
		dm.offset = max(dm.offset-dm.itemsPerPage(), 0)
	}

	return dm, nil
}

// itemsPerPage calculates how many diff lines fit on screen.
func (dm diffModel) itemsPerPage() int {
	if dm.height == 0 {
		return 20
	}

	// Title (2), summary (2), footer (2).
	reserved := 6

	return max(dm.height-reserved, 1)
}

// maxOffset returns the maximum scroll offset.
func (dm diffModel) maxOffset() int {
	return max(len(dm.lines)-dm.itemsPerPage(), 0)
}

// needsPagination returns true if the diff is too long to fit on screen.
func (dm diffModel) needsPagination() bool {
	return len(dm.lines) > dm.itemsPerPage() && dm.height > 0
}

func (dm diffModel) View() string {
	if !dm.rendered {
		return "Computing diffs…\n"
	}

	title := titleStyle().Render(diffTitle)

	if len(dm.lines) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			summaryStyle().Render("No changes"),
			footerStyle(dm.width).Render("Press q to quit"),
		)
	}

	accentStyle := lipgloss.NewStyle().Foreground(accentColor)
	summary := summaryStyle().Render(fmt.Sprintf("Changed files: %s", accentStyle.Render(fmt.Sprintf("%d", dm.files))))

	end := min(dm.offset+dm.itemsPerPage(), len(dm.lines))

	body := make([]string, 0, end-dm.offset)
	for _, line := range dm.lines[dm.offset:end] {
		if dm.width > 0 {
			body = append(body, "  "+renderDiffLine(line, dm.width-2))
		} else {
			body = append(body, "  "+line)
		}
	}

	help := "Press q to quit"
	if dm.needsPagination() {
		help = fmt.Sprintf("Lines %d-%d of %d • ↑/k up • ↓/j down • d/u page • g/G top/bottom • q quit",
			dm.offset+1, end, len(dm.lines))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		strings.Join(body, "\n"),
		"",
		footerStyle(dm.width).Render(help),
	)
}
