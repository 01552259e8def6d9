package auth

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mail-client/internal/api"
)

func newAuthModel() Model {
	return New(nil, 80, 24)
}

func TestNewArmsLoginForm(t *testing.T) {
	m := New(nil, 80, 24)

	// The form must exist on the constructed model itself; a fresh
	// launch goes straight from New to Update/View and input would be
	// swallowed otherwise.
	require.NotNil(t, m.form)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Email")
	assert.Contains(t, m.View(), "Password")
}

func TestBusySuppressesInput(t *testing.T) {
	m := newAuthModel()
	m.busy = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.True(t, m.Busy())

	// Tab switching is suppressed too.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, TabLogin, m.tab)
}

func TestLoginFailureShowsMessageAndReArmsForm(t *testing.T) {
	m := newAuthModel()
	m.busy = true
	m.fb.email = "alice@example.com"

	m, _ = m.Update(loginResultMsg{err: &api.AuthRejected{Message: "Invalid credentials"}})

	assert.False(t, m.Busy())
	assert.Equal(t, "Invalid credentials", m.errMsg)
	require.NotNil(t, m.form)
	// The typed email survives the rebuild for a retry.
	assert.Equal(t, "alice@example.com", m.fb.email)
}

func TestLoginSuccessEmitsLoginDone(t *testing.T) {
	m := newAuthModel()
	m.busy = true

	m, cmd := m.Update(loginResultMsg{
		creds: &api.Credentials{Token: "tok-123", UserID: "user-1"},
	})
	require.NotNil(t, cmd)

	msg, ok := cmd().(LoginDoneMsg)
	require.True(t, ok)
	assert.Equal(t, "tok-123", msg.Creds.Token)
	assert.Equal(t, "user-1", msg.Creds.UserID)
	assert.False(t, m.Busy())
}

func TestSignupSuccessReturnsToLoginTab(t *testing.T) {
	m := newAuthModel()
	m.tab = TabSignup
	m.busy = true
	m.fb.password = "secret"

	m, _ = m.Update(signupResultMsg{})

	assert.Equal(t, TabLogin, m.tab)
	assert.Equal(t, "Signup successful! You can now log in.", m.infoMsg)
	assert.Empty(t, m.fb.password)
	assert.False(t, m.Busy())
}

func TestSwitchTabClearsTransientState(t *testing.T) {
	m := newAuthModel()
	m.errMsg = "old error"
	m.fb.password = "secret"

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})

	assert.Equal(t, TabSignup, m.tab)
	assert.Empty(t, m.errMsg)
	assert.Empty(t, m.fb.password)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, TabLogin, m.tab)
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validateEmail("alice@example.com"))
	assert.Error(t, validateEmail(""))
	assert.Error(t, validateEmail("   "))
	assert.Error(t, validateEmail("not-an-email"))
}

func TestValidateRequired(t *testing.T) {
	validate := validateRequired("Password")
	assert.NoError(t, validate("secret"))
	assert.Error(t, validate(""))
	assert.Error(t, validate("  "))
}
