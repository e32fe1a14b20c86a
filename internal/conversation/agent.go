package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/llm"
	"github.com/muhammadolammi/hrworkflow/internal/logging"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

// EventType names a session status change.
type EventType string

const (
	EventDraftGenerated EventType = "draft_generated"
	EventEmailSent      EventType = "email_sent"
	EventEmailFailed    EventType = "email_failed"
)

// Event is published to the Notifier, if one is set.
type Event struct {
	Type      EventType `json:"type"`
	SessionID uuid.UUID `json:"session_id"`
	Recipient string    `json:"recipient,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Notifier receives session events. Failures are logged and otherwise ignored.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Agent answers HR queries about a candidate and drafts and sends email.
type Agent struct {
	Models   llm.Source
	Sender   mail.Sender
	Defaults mail.Credentials
	Notifier Notifier
	Logger   logrus.FieldLogger
}

// Reply is the outcome of one utterance.
type Reply struct {
	Intent Intent
	Text   string
	Draft  *EmailDraft
	Send   *SendResult
}

// Handle classifies an utterance and runs the matching action. Send failures
// are reported in the Reply, never as an error.
func (a *Agent) Handle(ctx context.Context, s *Session, utterance string, overrides mail.Credentials) (Reply, error) {
	intent := Classify(utterance)
	a.log().WithFields(logrus.Fields{
		"session_id": s.ID,
		"intent":     intent,
	}).Debug("handling utterance")

	switch intent {
	case IntentGenerateEmail:
		draft, err := a.GenerateDraft(ctx, s, utterance)
		if err != nil {
			return Reply{Intent: intent}, err
		}
		preview := FormatEmail(draft.Subject, CandidateName(draft.RecipientEmail), draft.Body, s.HRName)
		return Reply{
			Intent: intent,
			Draft:  &draft,
			Text: fmt.Sprintf("Email generated successfully!\n\n%s\n\nSay 'send email' or 'send it' to send this email to %s.",
				preview, draft.RecipientEmail),
		}, nil

	case IntentSendEmail:
		res := a.Send(ctx, s, overrides)
		return Reply{Intent: intent, Send: &res, Text: res.Message()}, nil
	}

	text, err := a.Query(ctx, s, utterance)
	if err != nil {
		return Reply{Intent: intent}, err
	}
	return Reply{Intent: intent, Text: text}, nil
}

// Query sends the context block, the history and the utterance to the model.
// The exchange is recorded only when the model answers.
func (a *Agent) Query(ctx context.Context, s *Session, utterance string) (string, error) {
	model, err := a.Models.Model(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to answer query: %w", err)
	}
	answer, err := model.Invoke(ctx, s.messages(utterance))
	if err != nil {
		return "", fmt.Errorf("failed to answer query: %w", err)
	}
	s.appendExchange(utterance, answer)
	return answer, nil
}

func (a *Agent) notify(ctx context.Context, e Event) {
	if a.Notifier == nil {
		return
	}
	if err := a.Notifier.Notify(ctx, e); err != nil {
		a.log().WithError(err).WithField("event", e.Type).Warn("failed to publish session event")
	}
}

func (a *Agent) log() logrus.FieldLogger {
	return logging.OrDiscard(a.Logger)
}
