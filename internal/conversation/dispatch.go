package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

// ErrNoRecipient is returned when the session has no candidate address.
var ErrNoRecipient = errors.New("no candidate email address")

// SendStatus is the outcome of a send request.
type SendStatus int

const (
	SendSucceeded SendStatus = iota
	SendFailed
	SendNothingToSend
)

func (s SendStatus) String() string {
	switch s {
	case SendSucceeded:
		return "sent"
	case SendFailed:
		return "failed"
	}
	return "nothing_to_send"
}

// SendResult is always returned in place of an error.
type SendResult struct {
	Status    SendStatus
	Recipient string
	Err       error
}

// Message is the text shown to the HR user.
func (r SendResult) Message() string {
	switch r.Status {
	case SendSucceeded:
		return fmt.Sprintf("Email sent successfully to %s!", r.Recipient)
	case SendNothingToSend:
		return "No email has been generated yet. Please generate an email first by saying 'prepare email' or 'create email'."
	}
	if errors.Is(r.Err, mail.ErrMissingCredentials) {
		return fmt.Sprintf("Failed to send email to %s: %v. Please check your email configuration.", r.Recipient, r.Err)
	}
	return fmt.Sprintf("Failed to send email to %s: %v", r.Recipient, r.Err)
}

// Send delivers the cached draft exactly as generated. Each empty field of
// overrides falls back to the agent defaults. The draft is kept so a second
// send reuses it.
func (a *Agent) Send(ctx context.Context, s *Session, overrides mail.Credentials) SendResult {
	draft, ok := s.Draft()
	if !ok {
		return SendResult{Status: SendNothingToSend}
	}
	result := SendResult{Status: SendFailed, Recipient: draft.RecipientEmail}
	logger := a.log().WithFields(logrus.Fields{
		"session_id": s.ID,
		"recipient":  draft.RecipientEmail,
	})

	result.Err = a.deliver(ctx, overrides.Resolve(a.Defaults), draft)
	if result.Err != nil {
		logger.WithError(result.Err).Error("failed to send email to candidate")
		a.notify(ctx, Event{Type: EventEmailFailed, SessionID: s.ID, Recipient: draft.RecipientEmail, Subject: draft.Subject, Error: result.Err.Error()})
		return result
	}
	result.Status = SendSucceeded
	logger.Info("email sent to candidate")
	a.notify(ctx, Event{Type: EventEmailSent, SessionID: s.ID, Recipient: draft.RecipientEmail, Subject: draft.Subject})
	return result
}

func (a *Agent) deliver(ctx context.Context, creds mail.Credentials, draft EmailDraft) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if draft.RecipientEmail == "" {
		return ErrNoRecipient
	}
	if a.Sender == nil {
		return &mail.TransportError{Protocol: mail.SMTP, Err: errors.New("no sender configured")}
	}
	return a.Sender.Send(ctx, creds, mail.Message{
		To:      draft.RecipientEmail,
		Subject: draft.Subject,
		Body:    draft.Body,
	})
}
