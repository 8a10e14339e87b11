package controller

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tickMsg time.Time

const (
	planTitle    = "🦋 Butterfly Instrumentation Plan"
	runTitle     = "🦋 Butterfly Instrumentation"
	resultsTitle = "🦋 Butterfly Results"
	reportsTitle = "🦋 Butterfly Reports"
	diffTitle    = "🦋 Butterfly Diff"
)

var accentColor = lipgloss.Color("6") // Cyan

var kindColors = map[string]lipgloss.Color{
	"transformed": lipgloss.Color("10"),
	"entry":       lipgloss.Color("6"),
	"unchanged":   lipgloss.Color("8"),
	"skipped":     lipgloss.Color("8"),
	"failed":      lipgloss.Color("9"),
}

func kindColor(kind string) lipgloss.Color {
	if c, ok := kindColors[kind]; ok {
		return c
	}

	return lipgloss.Color("8")
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)
}

func summaryStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)
}

func footerStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(width)
}

// animateScroll returns a window of text that scrolls by offset ticks once
// the text is wider than width.
func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	// Initial pause before scrolling starts (in ticks)
	pause := 5

	if offset < pause {
		return truncateToWidth(text, width)
	}

	runes := []rune(text + "   ")
	n := len(runes)
	start := (offset - pause) % n

	res := make([]rune, 0, width)
	for i := range width {
		res = append(res, runes[(start+i)%n])
	}

	return string(res)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

func renderDiffLine(line string, width int) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	switch {
	case strings.HasPrefix(line, "+++"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	case strings.HasPrefix(line, "---"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	case strings.HasPrefix(line, "@@"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	case strings.HasPrefix(line, "+"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	case strings.HasPrefix(line, "-"):
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case strings.TrimSpace(line) == "":
		style = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}

	return style.Render(truncateToWidth(line, width))
}
