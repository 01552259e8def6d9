package maillist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/keys"
	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/theme"
)

// SelectedMailMsg is sent when the user opens a message from the list.
// The message is always one of the items of the currently displayed
// folder, so selection can never reference mail outside of it.
type SelectedMailMsg struct {
	Mail model.Message
}

// Model is the message list view for the active folder.
type Model struct {
	list    list.Model
	keys    *keys.KeyMap
	folder  model.Folder
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

// New creates a new mail list model showing the given folder.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Inbox"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		list:    l,
		keys:    k,
		folder:  model.FolderInbox,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the mail list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) {
			// The displayed items belong to the previous folder while a
			// load is in flight; opening one would leave the detail pane
			// on a message the incoming folder does not contain.
			if m.loading {
				return m, nil
			}
			item, ok := m.list.SelectedItem().(MailItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedMailMsg{Mail: item.Mail}
			}
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn).
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the mail list view.
func (m Model) View() string {
	if m.loading {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render(m.spinner.View() + " Loading...")
	}

	if len(m.list.Items()) == 0 {
		style := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return style.Render("No emails in this folder.")
	}

	return m.list.View()
}

// SetMails replaces the displayed messages wholesale with the result of
// the most recently completed fetch.
func (m *Model) SetMails(mails []model.Message) tea.Cmd {
	items := make([]list.Item, len(mails))
	for i, mail := range mails {
		items[i] = MailItem{Mail: mail}
	}
	m.list.ResetSelected()
	return m.list.SetItems(items)
}

// SetFolder updates the list title for the newly selected folder.
func (m *Model) SetFolder(folder model.Folder) {
	m.folder = folder
	switch folder {
	case model.FolderInbox:
		m.list.Title = "Inbox"
	case model.FolderSent:
		m.list.Title = "Sent"
	case model.FolderTrash:
		m.list.Title = "Trash"
	}
}

// Mails returns the currently displayed messages in order.
func (m Model) Mails() []model.Message {
	items := m.list.Items()
	mails := make([]model.Message, 0, len(items))
	for _, item := range items {
		if mi, ok := item.(MailItem); ok {
			mails = append(mails, mi.Mail)
		}
	}
	return mails
}

// StartLoading marks the list as busy and starts the spinner.
func (m *Model) StartLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

// StopLoading clears the busy flag.
func (m *Model) StopLoading() {
	m.loading = false
}

// Loading reports whether a folder fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
