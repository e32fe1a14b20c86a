// Package inbox summarises, triages, answers and writes HR email with the LLM.
package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/analysis"
	"github.com/muhammadolammi/hrworkflow/internal/conversation"
	"github.com/muhammadolammi/hrworkflow/internal/llm"
	"github.com/muhammadolammi/hrworkflow/internal/logging"
	"github.com/muhammadolammi/hrworkflow/internal/mail"
)

// Category is the triage label of an inbox message.
type Category string

const (
	CategorySpam          Category = "spam"
	CategoryUrgent        Category = "urgent"
	CategoryNeedsReview   Category = "needs_review"
	CategoryInformational Category = "informational"
)

const noSubject = "No Subject"

// Assistant runs one model call per operation.
type Assistant struct {
	Models llm.Source
	Logger logrus.FieldLogger
}

func (a *Assistant) invoke(ctx context.Context, prompt string) (string, error) {
	model, err := a.Models.Model(ctx)
	if err != nil {
		return "", err
	}
	out, err := llm.InvokePrompt(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Summarize condenses an email body to two or three sentences.
func (a *Assistant) Summarize(ctx context.Context, e mail.Email) (string, error) {
	out, err := a.invoke(ctx, "Summarize the following email content in 2 to 3 sentences: "+e.Body)
	if err != nil {
		return "", fmt.Errorf("failed to summarize email %s: %w", e.ID, err)
	}
	return out, nil
}

// Classify triages an email.
func (a *Assistant) Classify(ctx context.Context, e mail.Email) (Category, error) {
	prompt := fmt.Sprintf("Analyze the following email with subject: %s and content: %s and classify the email type. "+
		"Classify it as 'spam', 'urgent', 'informational', or 'needs review'.", e.Subject, e.Body)
	out, err := a.invoke(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to classify email %s: %w", e.ID, err)
	}
	logging.OrDiscard(a.Logger).WithField("id", e.ID).Debugf("raw classification: %s", out)
	return ParseCategory(out), nil
}

// ParseCategory maps model output to a Category. "needs review" is checked
// before the other labels since replies often mention several.
func ParseCategory(text string) Category {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "needs review"), strings.Contains(lower, "needs_review"):
		return CategoryNeedsReview
	case strings.Contains(lower, "urgent"):
		return CategoryUrgent
	case strings.Contains(lower, "spam"):
		return CategorySpam
	}
	return CategoryInformational
}

// Reply drafts a formal answer to e, formatted with greeting and signature.
func (a *Assistant) Reply(ctx context.Context, e mail.Email, summary, recipientName, hrName string) (string, error) {
	prompt := fmt.Sprintf("You are an email assistant. Do not use placeholders like [User's Name]. "+
		"Do not include any greeting or signature lines in your response.\n\n"+
		"Email Details:\nFrom: %s\nSubject: %s\nContent: %s\nSummary: %s\n\nReply in a formal tone.",
		recipientName, e.Subject, e.Body, summary)
	out, err := a.invoke(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return conversation.FormatEmail("Re: "+e.Subject, recipientName, out, hrName), nil
}

// Composed is a free-form email written by the model.
type Composed struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ComposeRequest describes the email to write. Candidate context is optional.
type ComposeRequest struct {
	Instruction    string
	Candidate      *analysis.CandidateAnalysis
	JobDescription string
}

func composePrompt(req ComposeRequest) string {
	var b strings.Builder
	if c := req.Candidate; c != nil && req.JobDescription != "" {
		email := c.CandidateEmail
		if email == "" {
			email = "Candidate"
		}
		b.WriteString("You are an HR assistant helping to write a professional email to a candidate.\n\n")
		b.WriteString("CANDIDATE INFORMATION:\n")
		fmt.Fprintf(&b, "- Email: %s\n- Match Percentage: %v%%\n- Position Level: %s\n- Key Strengths: %s\n\n",
			email, c.MatchPercentage, c.PositionLevel, strings.Join(c.KeyStrengths, ", "))
		fmt.Fprintf(&b, "JOB DESCRIPTION:\n%s\n\n", truncate(req.JobDescription, 1500))
		fmt.Fprintf(&b, "HR INSTRUCTIONS:\n%s\n\n", req.Instruction)
	} else {
		b.WriteString("You are an email writing assistant helping to write a professional email.\n\n")
		fmt.Fprintf(&b, "USER INSTRUCTIONS:\n%s\n\n", req.Instruction)
	}
	b.WriteString("Generate a professional email. Provide ONLY a JSON response with this exact format:\n")
	b.WriteString(`{"subject": "Email Subject Here", "body": "Email body content here"}` + "\n\n")
	b.WriteString("Make the email professional and appropriate for the context described.")
	return b.String()
}

// Compose asks the model for a subject and body.
func (a *Assistant) Compose(ctx context.Context, req ComposeRequest) (Composed, error) {
	out, err := a.invoke(ctx, composePrompt(req))
	if err != nil {
		return Composed{}, fmt.Errorf("failed to generate email: %w", err)
	}
	return ParseComposed(out), nil
}

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	subjectRe    = regexp.MustCompile(`(?i)subject\s*:\s*([^\n]+)`)
)

// ParseComposed reads the model's JSON, falling back to a "Subject:" line
// with everything after it as the body.
func ParseComposed(text string) Composed {
	if m := jsonObjectRe.FindString(text); m != "" {
		var c Composed
		if err := json.Unmarshal([]byte(m), &c); err == nil {
			if strings.TrimSpace(c.Subject) == "" {
				c.Subject = noSubject
			}
			c.Body = strings.TrimSpace(c.Body)
			return c
		}
	}
	loc := subjectRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return Composed{Subject: noSubject, Body: strings.TrimSpace(text)}
	}
	return Composed{
		Subject: strings.TrimSpace(text[loc[2]:loc[3]]),
		Body:    strings.TrimSpace(text[loc[1]:]),
	}
}

func truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
