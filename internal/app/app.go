package app

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nhle/mail-client/internal/api"
	"github.com/nhle/mail-client/internal/keys"
	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/session"
	"github.com/nhle/mail-client/internal/theme"
	"github.com/nhle/mail-client/internal/ui"
	authview "github.com/nhle/mail-client/internal/ui/auth"
	"github.com/nhle/mail-client/internal/ui/command"
	"github.com/nhle/mail-client/internal/ui/compose"
	"github.com/nhle/mail-client/internal/ui/detail"
	helpview "github.com/nhle/mail-client/internal/ui/help"
	"github.com/nhle/mail-client/internal/ui/maillist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewMail
	ViewDetail
	ViewCompose
	ViewConfirmLogout
	ViewHelp
	ViewCommand
)

// sessionRestoredMsg is sent at startup when a persisted session was
// found in the keyring.
type sessionRestoredMsg struct{}

// Model is the root Bubble Tea model. It owns the session, the active
// folder, the recipient directory, the pending draft, and view routing.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *session.Store
	client       *api.Client
	keys         *keys.KeyMap

	authView    authview.Model
	mailList    maillist.Model
	detailView  detail.Model
	composeView compose.Model
	commandView command.Model
	helpView    helpview.Model

	// Active folder and the id of the most recently initiated folder
	// load. A fetch result may only commit while its id is still the
	// active one.
	folder        model.Folder
	activeRequest uuid.UUID

	// Recipient directory, refreshed once per session establishment.
	recipients []model.Recipient

	// Draft pending in the compose form. Cleared on successful send or
	// explicit cancel, preserved across a failed send for retry.
	draft model.Draft

	// Logout confirmation state.
	logoutForm   *huh.Form
	logoutChoice *bool

	toast      string
	toastIsErr bool
	ready      bool
}

// New creates the root application model. The initial view depends on
// whether a session was restored from the keyring before construction.
func New(sess *session.Store, client *api.Client) Model {
	k := keys.DefaultKeyMap()
	confirmed := false

	m := Model{
		currentView:  ViewAuth,
		session:      sess,
		client:       client,
		keys:         k,
		authView:     authview.New(client, 80, 24),
		mailList:     maillist.New(k, 80, 24),
		detailView:   detail.New(k, 80, 24),
		composeView:  compose.New(80, 24),
		commandView:  command.New(80, 24),
		helpView:     helpview.New(k, 80, 24),
		folder:       model.FolderInbox,
		logoutChoice: &confirmed,
	}

	if sess.IsAuthenticated() {
		m.currentView = ViewMail
	}
	return m
}

// Init returns the startup commands: the auth form, or the first
// folder load when a persisted session was restored.
func (m Model) Init() tea.Cmd {
	if m.session.IsAuthenticated() {
		return func() tea.Msg { return sessionRestoredMsg{} }
	}
	return m.authView.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resizeViews()
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case sessionRestoredMsg:
		return m, m.enterMailbox()

	case authview.LoginDoneMsg:
		if err := m.session.SignIn(msg.Creds.Token, msg.Creds.UserID); err != nil {
			log.Printf("persisting session: %v", err)
		}
		m.showSuccess("Login successful!")
		return m, m.enterMailbox()

	case mailLoadedMsg:
		return m, m.handleMailLoaded(msg)

	case recipientsLoadedMsg:
		if msg.err != nil {
			// A missing directory only degrades compose; don't block the
			// mailbox over it.
			log.Printf("fetching recipient directory: %v", msg.err)
			return m, nil
		}
		m.recipients = msg.recipients
		m.composeView.SetRecipients(msg.recipients)
		return m, nil

	case maillist.SelectedMailMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detailView.SetMail(msg.Mail)
		m.resizeViews()
		return m, nil

	case detail.BackMsg:
		m.detailView.Clear()
		m.currentView = ViewMail
		m.resizeViews()
		return m, nil

	case compose.SendRequestMsg:
		m.draft = msg.Draft
		return m, m.sendMail(msg.Draft)

	case compose.CancelMsg:
		m.draft = model.Draft{}
		m.currentView = ViewMail
		return m, nil

	case sendResultMsg:
		return m.handleSendResult(msg)

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		m.toast = ""
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// handleSendResult finishes the send workflow. The transition to the
// sent folder happens only after the server confirmed the send.
func (m Model) handleSendResult(msg sendResultMsg) (tea.Model, tea.Cmd) {
	m.composeView.SetSending(false)

	if msg.err != nil {
		m.showError(api.UserMessage(msg.err, "Failed to send mail."))
		if api.IsAuthRequired(msg.err) {
			// No session to send with; back to the entry point.
			return m, m.resetToAuth()
		}
		// Draft is preserved; re-arm the form for a retry.
		m.currentView = ViewCompose
		return m, m.composeView.Start(m.draft)
	}

	m.showSuccess("Mail sent successfully!")
	m.draft = model.Draft{}
	m.currentView = ViewMail
	return m, m.loadFolder(model.FolderSent)
}

// handleKey processes global keys through the keymap, then delegates
// to the active view. A matched binding whose view guard fails falls
// through so forms still receive the rune.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewMail {
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil
		}
		if m.mailboxFocused() {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil
		}

	case key.Matches(msg, m.keys.Command):
		if m.mailboxFocused() {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()
		}

	case key.Matches(msg, m.keys.Compose):
		if m.mailboxFocused() {
			return m.openCompose()
		}

	case key.Matches(msg, m.keys.Inbox):
		if m.mailboxFocused() {
			m.currentView = ViewMail
			return m, m.loadFolder(model.FolderInbox)
		}

	case key.Matches(msg, m.keys.Sent):
		if m.mailboxFocused() {
			m.currentView = ViewMail
			return m, m.loadFolder(model.FolderSent)
		}

	case key.Matches(msg, m.keys.Trash):
		if m.mailboxFocused() {
			m.currentView = ViewMail
			return m, m.loadFolder(model.FolderTrash)
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.mailboxFocused() {
			return m, m.loadFolder(m.folder)
		}

	case key.Matches(msg, m.keys.Logout):
		if m.mailboxFocused() {
			return m.openLogoutConfirm()
		}

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewHelp, ViewCommand:
			m.currentView = m.previousView
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// mailboxFocused reports whether folder keys should be honored.
func (m Model) mailboxFocused() bool {
	return m.currentView == ViewMail || m.currentView == ViewDetail
}

// enterMailbox transitions to the authenticated view and starts the
// initial loads: the recipient directory (once per session) and the
// inbox. The two fetches are independent and run concurrently.
func (m *Model) enterMailbox() tea.Cmd {
	m.currentView = ViewMail
	m.previousView = ViewMail
	return tea.Batch(
		m.refreshDirectory(),
		m.loadFolder(model.FolderInbox),
	)
}

// openCompose activates the compose form over the pending draft.
func (m Model) openCompose() (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewCompose
	m.composeView.SetRecipients(m.recipients)
	return m, m.composeView.Start(m.draft)
}

// openLogoutConfirm gates sign-out behind an explicit confirmation.
func (m Model) openLogoutConfirm() (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewConfirmLogout
	*m.logoutChoice = false
	m.logoutForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Are you sure?").
				Description("You will be logged out!").
				Affirmative("Yes, Logout!").
				Negative("Cancel").
				Value(m.logoutChoice),
		),
	)
	return m, m.logoutForm.Init()
}

// updateLogoutConfirm drives the confirmation form.
func (m Model) updateLogoutConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.logoutForm == nil {
		m.currentView = m.previousView
		return m, nil
	}

	mdl, cmd := m.logoutForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.logoutForm = f
	}

	if m.logoutForm.State == huh.StateCompleted {
		if *m.logoutChoice {
			return m, m.resetToAuth()
		}
		m.currentView = m.previousView
		return m, nil
	}
	if m.logoutForm.State == huh.StateAborted {
		m.currentView = m.previousView
		return m, nil
	}

	return m, cmd
}

// resetToAuth signs out and discards every piece of dependent state
// together: directory, messages, selection, and draft. This is a hard
// reset back to the unauthenticated entry point, not a soft
// transition.
func (m *Model) resetToAuth() tea.Cmd {
	if err := m.session.SignOut(); err != nil {
		log.Printf("clearing session: %v", err)
	}

	m.activeRequest = uuid.Nil
	m.recipients = nil
	m.draft = model.Draft{}
	m.folder = model.FolderInbox
	m.mailList = maillist.New(m.keys, 80, 24)
	m.detailView = detail.New(m.keys, 80, 24)
	m.composeView = compose.New(80, 24)
	m.authView = authview.New(m.client, 80, 24)
	m.logoutForm = nil
	m.currentView = ViewAuth
	m.previousView = ViewAuth
	m.resizeViews()

	return m.authView.Init()
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "inbox":
		m.currentView = ViewMail
		return m, m.loadFolder(model.FolderInbox)
	case "sent":
		m.currentView = ViewMail
		return m, m.loadFolder(model.FolderSent)
	case "trash":
		m.currentView = ViewMail
		return m, m.loadFolder(model.FolderTrash)
	case "compose", "new":
		return m.openCompose()
	case "refresh", "reload":
		return m, m.loadFolder(m.folder)
	case "logout":
		return m.openLogoutConfirm()
	case "quit", "q":
		return m, tea.Quit
	default:
		m.showError("Unknown command: " + cmd)
		return m, nil
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewMail:
		m.mailList, cmd = m.mailList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewCompose:
		m.composeView, cmd = m.composeView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewConfirmLogout:
		return m.updateLogoutConfirm(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Mailterm", m.renderFolderTabs())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewMail:
		return m.mailList.View()
	case ViewDetail:
		return m.layout.RenderSplit(m.mailList.View(), m.detailView.View())
	case ViewCompose:
		return m.composeView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewConfirmLogout:
		if m.logoutForm != nil {
			return lipgloss.NewStyle().
				Width(m.layout.ContentWidth()).
				Height(m.layout.ContentHeight()).
				Align(lipgloss.Center, lipgloss.Center).
				Render(theme.DetailPanelStyle.Render(m.logoutForm.View()))
		}
		return ""
	default:
		return ""
	}
}

// renderFolderTabs renders the folder selector for the header bar.
// Empty while unauthenticated.
func (m Model) renderFolderTabs() string {
	if m.currentView == ViewAuth {
		return ""
	}

	tabs := make([]string, 0, len(model.Folders))
	for _, f := range model.Folders {
		style := theme.FolderStyle(string(f), f == m.folder)
		tabs = append(tabs, style.Render(string(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// statusLine returns the toast when one is pending, else key hints.
func (m Model) statusLine() string {
	if m.toast != "" {
		if m.toastIsErr {
			return theme.ToastErrorStyle.Render(m.toast)
		}
		return theme.ToastSuccessStyle.Render(m.toast)
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewAuth:
		return "ctrl+t login/sign up | enter submit | ctrl+c quit"
	case ViewDetail:
		return "esc close | j/k scroll | c compose | 1/2/3 folder"
	case ViewCompose:
		return "enter submit | esc cancel"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewHelp:
		return "? close help | esc back"
	case ViewConfirmLogout:
		return "enter confirm | esc cancel"
	default:
		return "q quit | ? help | c compose | 1/2/3 folder | r reload | L logout"
	}
}

// showError sets an error toast.
func (m *Model) showError(text string) {
	m.toast = text
	m.toastIsErr = true
}

// showSuccess sets a success toast.
func (m *Model) showSuccess(text string) {
	m.toast = text
	m.toastIsErr = false
}

// resizeViews propagates the current layout to every view.
func (m *Model) resizeViews() {
	if m.layout.Width == 0 {
		return
	}

	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()

	m.authView.SetSize(w, h)
	m.composeView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.helpView.SetSize(w, h)

	if m.currentView == ViewDetail {
		m.mailList.SetSize(m.layout.ListWidth(), h)
		m.detailView.SetSize(m.layout.DetailWidth(), h)
	} else {
		m.mailList.SetSize(w, h)
		m.detailView.SetSize(m.layout.DetailWidth(), h)
	}
}
