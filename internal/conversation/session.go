// Package conversation holds the per-candidate HR chat: context assembly,
// intent routing, draft caching and dispatch.
package conversation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/llm"
)

const DefaultHRName = "HR Team"

// Turn is one visible exchange entry.
type Turn struct {
	Role    llm.Role
	Content string
}

// EmailDraft is the cached, unsent email awaiting a send request.
type EmailDraft struct {
	Subject        string
	Body           string
	RecipientEmail string
}

// Session is the state of one HR user talking about one candidate.
// A Session must not be used from more than one goroutine at a time.
type Session struct {
	ID             uuid.UUID
	Analysis       analysis.CandidateAnalysis
	JobDescription string
	CandidateEmail string
	HRName         string

	context string
	history []Turn
	draft   *EmailDraft
}

// NewSession builds the context block once. An empty candidateEmail falls
// back to the address extracted during analysis.
func NewSession(a analysis.CandidateAnalysis, jobDescription, candidateEmail, hrName string) *Session {
	if candidateEmail == "" {
		candidateEmail = a.CandidateEmail
	}
	if hrName == "" {
		hrName = DefaultHRName
	}
	return &Session{
		ID:             uuid.New(),
		Analysis:       a,
		JobDescription: jobDescription,
		CandidateEmail: candidateEmail,
		HRName:         hrName,
		context:        BuildContext(a, jobDescription, candidateEmail),
	}
}

// Context returns the system block sent first on every query.
func (s *Session) Context() string {
	return s.context
}

// History returns a copy of the visible turns.
func (s *Session) History() []Turn {
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Draft returns the cached draft, if one was generated.
func (s *Session) Draft() (EmailDraft, bool) {
	if s.draft == nil {
		return EmailDraft{}, false
	}
	return *s.draft, true
}

func (s *Session) setDraft(d EmailDraft) {
	s.draft = &d
}

func (s *Session) appendExchange(human, agent string) {
	s.history = append(s.history,
		Turn{Role: llm.RoleHuman, Content: human},
		Turn{Role: llm.RoleAgent, Content: agent},
	)
}

// messages is the full invocation for a query.
func (s *Session) messages(utterance string) []llm.Message {
	msgs := make([]llm.Message, 0, len(s.history)+2)
	msgs = append(msgs, llm.Message{Role: llm.RoleSystem, Content: s.context})
	for _, t := range s.history {
		msgs = append(msgs, llm.Message{Role: t.Role, Content: t.Content})
	}
	return append(msgs, llm.Message{Role: llm.RoleHuman, Content: utterance})
}

// Summary is a short description of the candidate for display.
func (s *Session) Summary() string {
	return fmt.Sprintf("Candidate Email: %s\nMatch: %s%%\nLevel: %s\nAcceptance Probability: %s",
		s.CandidateEmail,
		formatPercent(s.Analysis.MatchPercentage),
		s.Analysis.PositionLevel,
		s.Analysis.AcceptanceProbability,
	)
}
