package conversation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/llm"
)

const (
	DefaultSubject   = "Regarding Your Application"
	draftContextSize = 1000
)

var subjectRe = regexp.MustCompile(`(?i)subject\s*:\s*([^\n]+)`)

// ParseSubject returns the "subject: ..." line of an instruction, or the
// default subject.
func ParseSubject(instruction string) string {
	if m := subjectRe.FindStringSubmatch(instruction); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}
	return DefaultSubject
}

func draftPrompt(s *Session, instruction string) string {
	return fmt.Sprintf(`Generate a professional email to the candidate based on the following instructions:

HR Instructions: %s

Job Description Context:
%s...

Candidate Context:
- Match: %s%%
- Level: %s
- Strengths: %s

Generate ONLY the email body content (without subject, greeting, or signature). Make it professional, personalized, and relevant. Include specific details from the job description. Keep it concise but comprehensive.`,
		instruction,
		truncate(s.JobDescription, draftContextSize),
		formatPercent(s.Analysis.MatchPercentage),
		orUnknown(string(s.Analysis.PositionLevel)),
		strings.Join(s.Analysis.KeyStrengths, ", "),
	)
}

// GenerateDraft asks the model for a body and caches the draft on the
// session, replacing any previous one.
func (a *Agent) GenerateDraft(ctx context.Context, s *Session, instruction string) (EmailDraft, error) {
	model, err := a.Models.Model(ctx)
	if err != nil {
		return EmailDraft{}, fmt.Errorf("failed to generate email: %w", err)
	}
	body, err := llm.InvokePrompt(ctx, model, draftPrompt(s, instruction))
	if err != nil {
		return EmailDraft{}, fmt.Errorf("failed to generate email: %w", err)
	}

	draft := EmailDraft{
		Subject:        ParseSubject(instruction),
		Body:           strings.TrimSpace(body),
		RecipientEmail: s.CandidateEmail,
	}
	s.setDraft(draft)

	a.log().WithFields(logrus.Fields{
		"session_id": s.ID,
		"recipient":  draft.RecipientEmail,
		"subject":    draft.Subject,
	}).Info("email draft generated")
	a.notify(ctx, Event{Type: EventDraftGenerated, SessionID: s.ID, Recipient: draft.RecipientEmail, Subject: draft.Subject})
	return draft, nil
}

// CandidateName guesses a first name from the address local part.
func CandidateName(email string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return "Candidate"
	}
	first, _, _ := strings.Cut(local, ".")
	if first == "" {
		return "Candidate"
	}
	r, size := utf8.DecodeRuneInString(first)
	return string(unicode.ToUpper(r)) + strings.ToLower(first[size:])
}

// FormatEmail renders a draft for preview with a greeting and signature.
// The sent message carries the body alone.
func FormatEmail(subject, candidateName, body, hrName string) string {
	return fmt.Sprintf("Subject: %s\n\nDear %s,\n\n%s\n\nBest regards,\n%s", subject, candidateName, body, hrName)
}
