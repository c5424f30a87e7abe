package mailservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendWelcomeEmail(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockLogger := new(MockLogger)

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		logger: mockLogger,
		ctx:    ctx,
		cancel: cancel,
	}

	s.SendWelcomeEmail()

	// give the consumer goroutine time to drain the mocked delivery
	time.Sleep(100 * time.Millisecond)
	s.Close()

	assert.True(t, mockMailer.IsCalled())
	assert.Equal(t, "test@example.com", mockMailer.GetEmail())
	assert.True(t, mockLogger.Has("welcome email sent"))
}
