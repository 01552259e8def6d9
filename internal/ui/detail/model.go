package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/keys"
	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/theme"
)

// BackMsg signals the parent to close the detail pane.
type BackMsg struct{}

// Model is the message detail (reading pane) view.
type Model struct {
	mail     *model.Message
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg {
				return BackMsg{}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn).
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail pane.
func (m Model) View() string {
	if m.mail == nil {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("No message selected")
	}

	return theme.DetailPanelStyle.
		Width(m.width - 2).
		Render(m.viewport.View())
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.mail == nil {
		return ""
	}

	var sections []string

	subjectStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	subject := m.mail.Subject
	if subject == "" {
		subject = "(no subject)"
	}
	sections = append(sections, subjectStyle.Render(subject))

	fromStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	sections = append(sections, fromStyle.Render(
		fmt.Sprintf("From: %s", m.mail.From()),
	))

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	sections = append(sections, sepStyle.Render(
		strings.Repeat("─", min(m.width-6, 80)),
	))
	sections = append(sections, "")
	sections = append(sections, m.mail.Content)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetMail opens the given message in the pane.
func (m *Model) SetMail(mail model.Message) {
	m.mail = &mail
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Clear closes the pane. Called whenever the folder changes so a stale
// message can never stay open for a folder it no longer belongs to.
func (m *Model) Clear() {
	m.mail = nil
	m.viewport.SetContent("")
}

// Mail returns the currently open message, or nil when none is open.
func (m Model) Mail() *model.Message {
	return m.mail
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.mail != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
