package email

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidMessage is returned for messages without a recipient or subject
var ErrInvalidMessage = errors.New("invalid email message")

// Message is a rendered email ready for delivery
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the fields every transport needs
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" || !strings.Contains(m.To, "@") {
		return errors.Join(ErrInvalidMessage, errors.New("recipient is required"))
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.Join(ErrInvalidMessage, errors.New("subject is required"))
	}
	if m.HTML == "" && m.Text == "" {
		return errors.Join(ErrInvalidMessage, errors.New("body is required"))
	}
	return nil
}

// Mailer delivers a message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
