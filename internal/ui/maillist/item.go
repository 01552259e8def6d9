package maillist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mail-client/internal/model"
	"github.com/nhle/mail-client/internal/theme"
)

// MailItem wraps a model.Message so it can be used in a bubbles/list.
type MailItem struct {
	Mail model.Message
}

// FilterValue returns the string used for fuzzy filtering.
func (i MailItem) FilterValue() string { return i.Mail.Subject }

// Title returns the sender line shown for the message.
func (i MailItem) Title() string { return i.Mail.From() }

// Description returns the subject line shown under the sender.
func (i MailItem) Description() string { return i.Mail.Subject }

// ItemDelegate implements list.ItemDelegate for rendering mail rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single mail row: sender on the first line, subject
// dimmed below it.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MailItem)
	if !ok {
		return
	}

	sender := mi.Mail.From()
	subject := mi.Mail.Subject
	if subject == "" {
		subject = "(no subject)"
	}

	senderLine := lipgloss.NewStyle().Bold(true).Render(sender)
	subjectLine := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(subject)

	row := fmt.Sprintf("%s\n%s", senderLine, subjectLine)

	if index == m.Index() {
		row = theme.SelectedItemStyle.Render(row)
	} else {
		row = theme.ListItemStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
