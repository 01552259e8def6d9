package app

import (
	"context"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/mail-client/internal/api"
	"github.com/nhle/mail-client/internal/model"
)

// mailLoadedMsg carries the result of a folder fetch. requestID ties
// the result back to the load that started it so superseded fetches
// can be discarded on arrival.
type mailLoadedMsg struct {
	requestID uuid.UUID
	folder    model.Folder
	mails     []model.Message
	err       error
}

// recipientsLoadedMsg carries the refreshed directory.
type recipientsLoadedMsg struct {
	recipients []model.Recipient
	err        error
}

// sendResultMsg carries the outcome of a send request.
type sendResultMsg struct {
	err error
}

// loadFolder makes folder the active folder and starts a fetch for its
// contents. Selection is cleared unconditionally before the load
// begins. Only the most recently initiated load may commit its result:
// each load gets a fresh request id and the handler for mailLoadedMsg
// drops anything that no longer matches (last-request-wins).
//
// When the session is not authenticated this is a no-op that commits
// an empty list without touching the network.
func (m *Model) loadFolder(folder model.Folder) tea.Cmd {
	m.folder = folder
	m.detailView.Clear()
	m.mailList.SetFolder(folder)

	if !m.session.IsAuthenticated() {
		m.activeRequest = uuid.Nil
		return m.mailList.SetMails(nil)
	}

	requestID := uuid.New()
	m.activeRequest = requestID

	client := m.client
	spin := m.mailList.StartLoading()

	return tea.Batch(spin, func() tea.Msg {
		mails, err := client.ListMail(context.Background())
		if err != nil {
			return mailLoadedMsg{requestID: requestID, folder: folder, err: err}
		}
		return mailLoadedMsg{
			requestID: requestID,
			folder:    folder,
			mails:     mailsFromAPI(mails),
		}
	})
}

// handleMailLoaded commits a completed folder fetch, or discards it
// when a newer load has been requested since it started.
func (m *Model) handleMailLoaded(msg mailLoadedMsg) tea.Cmd {
	if msg.requestID != m.activeRequest || msg.folder != m.folder {
		// Stale result from a superseded load; the displayed list
		// must reflect only the most recently requested folder.
		return nil
	}
	m.activeRequest = uuid.Nil
	m.mailList.StopLoading()

	if msg.err != nil {
		if api.IsDecodeError(msg.err) {
			// Malformed listing degrades to an empty folder.
			log.Printf("malformed mail listing: %v", msg.err)
			return m.mailList.SetMails(nil)
		}
		m.showError(api.UserMessage(msg.err, "Could not load this folder."))
		return m.mailList.SetMails(nil)
	}

	return m.mailList.SetMails(msg.mails)
}

// refreshDirectory fetches the recipient directory. It runs exactly
// once per session establishment and is independent of folder loads.
// Unauthenticated, it resolves to an empty directory without a request.
func (m *Model) refreshDirectory() tea.Cmd {
	if !m.session.IsAuthenticated() {
		return func() tea.Msg {
			return recipientsLoadedMsg{}
		}
	}

	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		if err != nil {
			return recipientsLoadedMsg{err: err}
		}

		recipients := make([]model.Recipient, 0, len(users))
		for _, u := range users {
			recipients = append(recipients, model.Recipient{
				ID:          u.ID,
				DisplayName: u.Name,
			})
		}
		return recipientsLoadedMsg{recipients: recipients}
	}
}

// sendMail validates the draft and submits it. Validation and the
// session check resolve synchronously; no request is issued when
// either fails.
func (m *Model) sendMail(draft model.Draft) tea.Cmd {
	if err := validateDraft(draft); err != nil {
		return func() tea.Msg {
			return sendResultMsg{err: err}
		}
	}
	if !m.session.IsAuthenticated() {
		return func() tea.Msg {
			return sendResultMsg{err: &api.AuthRequired{}}
		}
	}

	client := m.client
	senderID := m.session.UserID()

	return func() tea.Msg {
		err := client.SendMail(context.Background(), api.OutgoingMail{
			SenderID:  senderID,
			Recipient: draft.RecipientID,
			Subject:   draft.Subject,
			Content:   draft.Content,
		})
		return sendResultMsg{err: err}
	}
}

// validateDraft checks the required-field contract for outgoing mail.
func validateDraft(draft model.Draft) error {
	switch {
	case strings.TrimSpace(draft.RecipientID) == "":
		return &api.ValidationError{Field: "Recipient"}
	case strings.TrimSpace(draft.Subject) == "":
		return &api.ValidationError{Field: "Subject"}
	case strings.TrimSpace(draft.Content) == "":
		return &api.ValidationError{Field: "Message"}
	}
	return nil
}

// mailsFromAPI converts wire messages into display messages.
func mailsFromAPI(mails []api.Mail) []model.Message {
	out := make([]model.Message, 0, len(mails))
	for _, mail := range mails {
		msg := model.Message{
			ID:      mail.ID,
			Subject: mail.Subject,
			Content: mail.Content,
		}
		if mail.Sender != nil {
			msg.SenderName = mail.Sender.Name
		}
		out = append(out, msg)
	}
	return out
}
