package mail

import (
	"testing"

	"moments/config"
	"moments/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestDisabledMailerSkips(t *testing.T) {
	logger.InitNop()
	m := NewMailer(config.MailConfig{Enabled: false, BaseURL: "http://localhost:5173"})

	assert.False(t, m.Enabled())
	assert.Equal(t, "http://localhost:5173", m.BaseURL())
	assert.NoError(t, m.Send("a@example.com", "subject", "<p>body</p>"))
}

func TestSendRequiresRecipient(t *testing.T) {
	logger.InitNop()
	m := NewMailer(config.MailConfig{Enabled: false})
	assert.Error(t, m.Send("", "subject", "body"))
}
