package compose

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mail-client/internal/model"
)

func TestStartSeedsFormFromDraft(t *testing.T) {
	m := New(80, 24)
	m.SetRecipients([]model.Recipient{{ID: "u2", DisplayName: "Bob"}})

	draft := model.Draft{RecipientID: "u2", Subject: "Hello", Content: "Hi"}
	cmd := m.Start(draft)
	require.NotNil(t, cmd)

	// The preserved draft comes back out unchanged.
	assert.Equal(t, draft, m.Draft())
	assert.False(t, m.sending)
}

func TestStartFreshComposeIsEmpty(t *testing.T) {
	m := New(80, 24)
	m.SetRecipients([]model.Recipient{{ID: "u2", DisplayName: "Bob"}})

	// Leftover field state from an earlier compose must not leak in.
	m.fb.subject = "stale"
	m.Start(model.Draft{})

	assert.True(t, m.Draft().Empty())
}

func TestUpdateIgnoredWhileSending(t *testing.T) {
	m := New(80, 24)
	m.Start(model.Draft{RecipientID: "u2", Subject: "s", Content: "c"})
	m.SetSending(true)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.True(t, m.sending)
}

func TestUpdateIgnoredBeforeStart(t *testing.T) {
	m := New(80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.Nil(t, m.form)
}

func TestValidateRequired(t *testing.T) {
	validate := validateRequired("Subject")
	assert.NoError(t, validate("Hello"))
	assert.Error(t, validate(""))
	assert.Error(t, validate("   "))
}
