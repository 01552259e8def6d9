package model

// Folder is one of the fixed mailbox partitions. Selecting a folder is
// the sole trigger for reloading the message list.
type Folder string

const (
	FolderInbox Folder = "inbox"
	FolderSent  Folder = "sent"
	FolderTrash Folder = "trash"
)

// Folders lists every folder in sidebar order.
var Folders = []Folder{FolderInbox, FolderSent, FolderTrash}

// Message is a single mail as displayed in a folder. The set of
// messages for the active folder is replaced wholesale on every fetch.
type Message struct {
	// ID is the server-side identifier of the message.
	ID string

	// SenderName is the display name of the sender, or "" when the
	// server omitted the sender.
	SenderName string

	// Subject is the message subject line.
	Subject string

	// Content is the plain-text body.
	Content string
}

// From returns the sender name for display, falling back to a
// placeholder when the server omitted the sender.
func (m Message) From() string {
	if m.SenderName == "" {
		return "Unknown Sender"
	}
	return m.SenderName
}

// Recipient is a single addressable user from the directory. The
// directory is immutable once fetched and rebuilt wholesale on refresh.
type Recipient struct {
	// ID is the user's server-side identifier, sent as the recipient
	// of outgoing mail.
	ID string

	// DisplayName is the name shown in the compose recipient selector.
	DisplayName string
}

// Draft is an in-progress, unsent message. It exists from compose
// activation until a successful send or an explicit cancel.
type Draft struct {
	RecipientID string
	Subject     string
	Content     string
}

// Empty reports whether the draft has no content at all.
func (d Draft) Empty() bool {
	return d.RecipientID == "" && d.Subject == "" && d.Content == ""
}
