package mailer

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Ekediee/course-allocation-backend/internal/config"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridMailer delivers messages through the SendGrid v3 API.
type SendGridMailer struct {
	key    string
	from   *sgmail.Email
	logger zerolog.Logger
}

func NewSendGridMailer(cfg *config.Config, logger zerolog.Logger) *SendGridMailer {
	return &SendGridMailer{
		key:    cfg.SendGridAPIKey,
		from:   sgmail.NewEmail(cfg.MailFromName, cfg.MailFrom),
		logger: logger.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers the message in the background. Delivery failures are logged
// and dropped.
func (m *SendGridMailer) Send(msg Message) {
	go m.send(msg)
}

func (m *SendGridMailer) send(msg Message) {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/plain", msg.Text))

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(v3)

	res, err := sendgrid.API(req)
	if err != nil {
		m.logger.Error().Err(err).Str("to", msg.ToEmail).Msg("sending email failed")
		return
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error().Int("status", res.StatusCode).Str("to", msg.ToEmail).Msg("sendgrid rejected email")
	}
}
