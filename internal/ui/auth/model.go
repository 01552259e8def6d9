package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/api"
	"github.com/nhle/mail-client/internal/theme"
)

// Tab selects between the login and sign-up forms.
type Tab int

const (
	TabLogin Tab = iota
	TabSignup
)

// LoginDoneMsg is sent to the parent when the server accepted the
// credentials. The parent owns establishing the session.
type LoginDoneMsg struct {
	Creds api.Credentials
}

// loginResultMsg carries the sign-in response back into the view.
type loginResultMsg struct {
	creds *api.Credentials
	err   error
}

// signupResultMsg carries the sign-up response back into the view.
type signupResultMsg struct {
	err error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
	name     string
}

// Model is the unauthenticated entry view: a login form and a sign-up
// form on two tabs. A single request is in flight at most; the busy
// flag suppresses re-submission until it resolves.
type Model struct {
	client  *api.Client
	tab     Tab
	form    *huh.Form
	fb      *formBindings
	busy    bool
	spinner spinner.Model
	errMsg  string
	infoMsg string
	width   int
	height  int
}

// New creates a new auth view model with the login form armed. The
// form is built here, not in Init: Bubble Tea calls Init on a copy of
// the model and keeps only the returned command, so state must already
// be in place by then.
func New(client *api.Client, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		client:  client,
		tab:     TabLogin,
		fb:      &formBindings{},
		spinner: sp,
		width:   width,
		height:  height,
	}
	m.form = m.buildForm()
	return m
}

// Init returns the login form's initial command.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Busy reports whether an auth request is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Update handles messages for the auth view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err, "Something went wrong")
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		creds := *msg.creds
		return m, func() tea.Msg {
			return LoginDoneMsg{Creds: creds}
		}

	case signupResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = api.UserMessage(msg.err, "Something went wrong")
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		// Sign-up does not establish a session; the user still logs in.
		m.infoMsg = "Signup successful! You can now log in."
		m.tab = TabLogin
		m.fb.password = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case tea.KeyMsg:
		// Ignore all input while a request is in flight.
		if m.busy {
			return m, nil
		}
		if msg.String() == "ctrl+t" {
			return m.switchTab()
		}
	}

	if m.form == nil || m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m.submit()
	}
	if m.form.State == huh.StateAborted {
		// Re-arm the form; there is nowhere further back to go.
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	return m, cmd
}

// switchTab toggles between login and sign-up and rebuilds the form.
func (m Model) switchTab() (Model, tea.Cmd) {
	if m.tab == TabLogin {
		m.tab = TabSignup
	} else {
		m.tab = TabLogin
	}
	m.errMsg = ""
	m.infoMsg = ""
	m.fb.password = ""
	m.form = m.buildForm()
	return m, m.form.Init()
}

// submit issues the request for the active tab and marks the view busy.
func (m Model) submit() (Model, tea.Cmd) {
	m.busy = true
	m.errMsg = ""
	m.infoMsg = ""

	client := m.client
	email := m.fb.email
	password := m.fb.password
	name := m.fb.name

	if m.tab == TabSignup {
		return m, tea.Batch(
			m.spinner.Tick,
			func() tea.Msg {
				err := client.SignUp(context.Background(), name, email, password)
				return signupResultMsg{err: err}
			},
		)
	}

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			creds, err := client.SignIn(context.Background(), email, password)
			return loginResultMsg{creds: creds, err: err}
		},
	)
}

// View renders the auth view.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderTabs())
	sections = append(sections, "")

	if m.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.errMsg))
	}
	if m.infoMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(m.infoMsg))
	}

	if m.busy {
		label := "Logging in..."
		if m.tab == TabSignup {
			label = "Signing up..."
		}
		sections = append(sections, m.spinner.View()+" "+label)
	} else if m.form != nil {
		sections = append(sections, m.form.View())
	}

	sections = append(sections, theme.HelpStyle.Render(
		"ctrl+t switch login/sign up | enter submit",
	))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(theme.DetailPanelStyle.Render(content))
}

// renderTabs renders the Login / Sign Up tab bar.
func (m Model) renderTabs() string {
	render := func(label string, active bool) string {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(theme.ColorGray)
		if active {
			style = style.Bold(true).
				Foreground(theme.ColorWhite).
				Background(theme.ColorBlue)
		}
		return style.Render(label)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		render("Login", m.tab == TabLogin),
		render("Sign Up", m.tab == TabSignup),
	)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	var fields []huh.Field

	if m.tab == TabSignup {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("Enter your name").
			Value(&m.fb.name).
			Validate(validateRequired("Name")))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("Enter your email").
			Value(&m.fb.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			Placeholder("Enter your password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(validateRequired("Password")),
	)

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) formWidth() int {
	w := m.width / 2
	if w < 40 {
		w = 40
	}
	if w > 60 {
		w = 60
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
