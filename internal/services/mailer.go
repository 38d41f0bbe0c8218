package services

import (
	"context"

	"amabackend/internal/utils"
)

// Message is an outgoing email.
type Message struct {
	To      string
	Name    string
	Subject string
	HTML    string
}

// Mailer delivers outgoing email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the structured log instead of sending them.
type LogMailer struct {
	RequestID string
}

func (m LogMailer) Send(_ context.Context, msg Message) error {
	utils.LogEvent(m.RequestID, "mailer", "send", msg.Subject, "to", msg.To, "name", msg.Name)
	return nil
}
