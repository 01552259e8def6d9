package compose

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/theme"
)

// SendRequestMsg is dispatched when the user submits the compose form.
// The draft has passed the form layer's required-field validation.
type SendRequestMsg struct {
	Draft model.Draft
}

// CancelMsg is dispatched when the user abandons the compose form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	recipientID string
	subject     string
	content     string
}

// Model is the Bubble Tea model for the compose form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	recipients []model.Recipient
	sending    bool
	width      int
	height     int
}

// New creates a new compose form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetRecipients sets the directory entries offered by the recipient
// selector.
func (m *Model) SetRecipients(recipients []model.Recipient) {
	m.recipients = recipients
}

// Start initializes the form with the given draft. A fresh compose
// passes a zero draft; a retry after a failed send passes the
// preserved one.
func (m *Model) Start(draft model.Draft) tea.Cmd {
	m.sending = false
	m.fb.recipientID = draft.RecipientID
	m.fb.subject = draft.Subject
	m.fb.content = draft.Content
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSending toggles the busy flag while the send request is in
// flight; input is not re-submittable until it clears.
func (m *Model) SetSending(sending bool) {
	m.sending = sending
}

// Draft returns the current field values as a draft.
func (m Model) Draft() model.Draft {
	return model.Draft{
		RecipientID: m.fb.recipientID,
		Subject:     m.fb.subject,
		Content:     m.fb.content,
	}
}

// Update handles messages for the compose form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.sending {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.sending = true
		draft := m.Draft()
		return m, func() tea.Msg { return SendRequestMsg{Draft: draft} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the compose form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("New Mail")
	if m.sending {
		title = titleStyle.Render("Sending...")
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], len(m.recipients))
	for i, r := range m.recipients {
		opts[i] = huh.NewOption(r.DisplayName, r.ID)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("To").
				Options(opts...).
				Value(&m.fb.recipientID).
				Validate(validateRequired("Recipient")),
			huh.NewInput().
				Title("Subject").
				Placeholder("Subject").
				Value(&m.fb.subject).
				Validate(validateRequired("Subject")),
			huh.NewText().
				Title("Message").
				Placeholder("Write your message...").
				Value(&m.fb.content).
				Validate(validateRequired("Message")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
