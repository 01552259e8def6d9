package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/keys"
	"github.com/nhle/mail-client/internal/theme"
)

// bindingGroup adapts a slice of bindings to help.KeyMap so a single
// section can be rendered through the bubbles help component.
type bindingGroup []key.Binding

func (g bindingGroup) ShortHelp() []key.Binding  { return g }
func (g bindingGroup) FullHelp() [][]key.Binding { return [][]key.Binding{g} }

// section is one titled group of shortcuts in the overlay.
type section struct {
	title string
	group bindingGroup
}

// Model is the help overlay, grouped by mailbox concern rather than as
// one flat binding table.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates the help overlay for the given keymap.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true

	return Model{
		keys:   k,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help overlay. Closing it is the
// parent's concern.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Mailbox", bindingGroup{k.Up, k.Down, k.Select, k.Refresh}},
		{"Folders", bindingGroup{k.Inbox, k.Sent, k.Trash}},
		{"Mail", bindingGroup{k.Compose, k.Logout}},
		{"General", bindingGroup{k.Command, k.Help, k.Back, k.Quit}},
	}
}

// View renders the overlay: one titled block per section.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		MarginTop(1)

	blocks := []string{titleStyle.Render("Keyboard Shortcuts")}
	for _, s := range m.sections() {
		blocks = append(blocks,
			sectionStyle.Render(s.title),
			m.help.View(s.group),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, blocks...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
