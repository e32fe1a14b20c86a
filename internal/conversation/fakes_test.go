package conversation

import (
	"context"
	"errors"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/llm"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

type fakeModel struct {
	replies []string
	err     error
	calls   [][]llm.Message
}

func (f *fakeModel) Invoke(_ context.Context, messages []llm.Message) (string, error) {
	f.calls = append(f.calls, messages)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	r := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return r, nil
}

type sent struct {
	creds mail.Credentials
	msg   mail.Message
}

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, creds mail.Credentials, msg mail.Message) error {
	f.sent = append(f.sent, sent{creds, msg})
	return f.err
}

type fakeNotifier struct {
	err    error
	events []Event
}

func (f *fakeNotifier) Notify(_ context.Context, e Event) error {
	f.events = append(f.events, e)
	return f.err
}

var errAuth = errors.New("535 5.7.8 authentication failed")

var defaultCreds = mail.Credentials{Account: "hr@corp.io", Secret: "app-password", Host: "smtp.corp.io", Port: 587}

func testAnalysis() analysis.CandidateAnalysis {
	return analysis.CandidateAnalysis{
		MatchPercentage:       72.5,
		PositionLevel:         analysis.PositionSenior,
		AcceptanceProbability: analysis.ProbabilityMedium,
		KeyStrengths:          []string{"Go", "Postgres"},
		KeyGaps:               []string{"Kafka"},
		DetailedAnalysis:      "Solid backend engineer with six years of Go.",
		CandidateEmail:        "jane.roe@example.com",
	}
}

func newTestAgent(model *fakeModel, sender *fakeSender, notifier *fakeNotifier) *Agent {
	a := &Agent{
		Models:   llm.Static{M: model},
		Defaults: defaultCreds,
	}
	if sender != nil {
		a.Sender = sender
	}
	if notifier != nil {
		a.Notifier = notifier
	}
	return a
}

func testAnalysisEmpty() analysis.CandidateAnalysis {
	return analysis.CandidateAnalysis{}
}
