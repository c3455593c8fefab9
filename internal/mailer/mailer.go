// Package mailer sends transactional email. The sendgrid implementation is
// used when an API key is configured; deployments without one fall back to a
// console mailer that only logs.
package mailer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Ekediee/course-allocation-backend/internal/config"
)

// Message is a single transactional email.
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
}

// Mailer delivers messages asynchronously; failures are logged, never
// returned, so callers are not blocked on the email provider.
type Mailer interface {
	Send(msg Message)
}

// New picks the sendgrid mailer when a key is configured, the console mailer
// otherwise.
func New(cfg *config.Config, logger zerolog.Logger) Mailer {
	if cfg.SendGridAPIKey != "" {
		return NewSendGridMailer(cfg, logger)
	}
	return NewConsoleMailer(logger)
}

// CredentialsMessage builds the email sent to a newly created admin-side
// user with their generated password.
func CredentialsMessage(name, email, password string) Message {
	return Message{
		ToName:  name,
		ToEmail: email,
		Subject: "Your course allocation account",
		Text: fmt.Sprintf(
			"Hello %s,\n\nAn account has been created for you on the course allocation portal.\n\n"+
				"Email: %s\nPassword: %s\n\nPlease sign in and change your password.\n", name, email, password),
	}
}

// ConsoleMailer logs messages instead of delivering them.
type ConsoleMailer struct {
	logger zerolog.Logger
}

func NewConsoleMailer(logger zerolog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger.With().Str("component", "mailer").Logger()}
}

func (m *ConsoleMailer) Send(msg Message) {
	m.logger.Info().
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Msg(msg.Text)
}
