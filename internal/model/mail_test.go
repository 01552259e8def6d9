package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageFrom(t *testing.T) {
	assert.Equal(t, "Alice", Message{SenderName: "Alice"}.From())
	assert.Equal(t, "Unknown Sender", Message{}.From())
}

func TestDraftEmpty(t *testing.T) {
	assert.True(t, Draft{}.Empty())
	assert.False(t, Draft{Subject: "Hello"}.Empty())
	assert.False(t, Draft{RecipientID: "u1"}.Empty())
}
