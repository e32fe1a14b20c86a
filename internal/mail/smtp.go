package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"

	"github.com/muhammadolammi/hrworkflow/internal/logging"
)

const smtpsPort = 465

// SMTPSender delivers mail with STARTTLS, or implicit TLS on port 465.
type SMTPSender struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// Send implements Sender. The body is sent exactly as given.
func (s *SMTPSender) Send(ctx context.Context, creds Credentials, msg Message) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	logger := logging.OrDiscard(s.Logger).WithFields(logrus.Fields{
		"host":      creds.Host,
		"port":      creds.Port,
		"recipient": msg.To,
	})

	m := gomail.NewMsg()
	if err := m.From(creds.Account); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	opts := []gomail.Option{
		gomail.WithPort(creds.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(creds.Account),
		gomail.WithPassword(creds.Secret),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	}
	if s.Timeout > 0 {
		opts = append(opts, gomail.WithTimeout(s.Timeout))
	}
	if creds.Port == smtpsPort {
		opts = append(opts, gomail.WithSSL())
	}
	client, err := gomail.NewClient(creds.Host, opts...)
	if err != nil {
		return &TransportError{Protocol: SMTP, Err: err}
	}

	logger.Debug("connecting to SMTP server")
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		logger.WithError(err).Error("failed to send email")
		return &TransportError{Protocol: SMTP, Err: err}
	}
	logger.Info("email sent")
	return nil
}
