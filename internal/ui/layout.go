package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/theme"
)

// Layout manages the terminal frame: a header with the application
// title and folder tabs, the content area, and a status bar that
// doubles as the toast surface.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// ListWidth returns the width of the message list pane when the detail
// pane is open beside it.
func (l Layout) ListWidth() int {
	w := l.Width * 2 / 5
	if w < 30 {
		w = 30
	}
	if w > l.Width {
		w = l.Width
	}
	return w
}

// DetailWidth returns the width of the detail pane in split view.
func (l Layout) DetailWidth() int {
	w := l.Width - l.ListWidth()
	if w < 0 {
		w = 0
	}
	return w
}

// RenderHeader renders the top header bar with the title on the left
// and the folder tabs on the right.
func (l Layout) RenderHeader(title string, tabs string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(tabs)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		tabs,
	)
}

// RenderStatusBar renders the bottom status bar. Toasts are passed in
// pre-styled and win over the plain hint text.
func (l Layout) RenderStatusBar(content string) string {
	rendered := theme.StatusBarStyle.Render(content)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderSplit places the message list and the detail pane side by side.
func (l Layout) RenderSplit(list string, detail string) string {
	left := lipgloss.NewStyle().Width(l.ListWidth()).Render(list)
	right := lipgloss.NewStyle().Width(l.DetailWidth()).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
