package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	geminiAgentName   = "hr assistant"
	geminiUserID      = "hr"
	geminiInstruction = "You are an expert HR assistant. Follow the instructions in each message exactly and answer only from the information it provides."
)

// Gemini runs prompts through an ADK agent backed by a Gemini model. Every
// Invoke uses a throwaway agent session; conversation state is carried in
// the messages themselves.
type Gemini struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
	timeout  time.Duration
}

// NewGemini builds the model, agent and runner.
func NewGemini(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Gemini, error) {
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	hrAgent, err := llmagent.New(llmagent.Config{
		Name:        geminiAgentName,
		Model:       model,
		Description: "Answer HR questions about a candidate",
		Instruction: geminiInstruction,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        hrAgent.Name(),
		Agent:          hrAgent,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &Gemini{
		runner:   r,
		sessions: sessions,
		appName:  hrAgent.Name(),
		timeout:  timeout,
	}, nil
}

// Invoke implements Model.
func (g *Gemini) Invoke(ctx context.Context, messages []Message) (string, error) {
	if err := checkMessages(messages); err != nil {
		return "", err
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	created, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.appName,
		UserID:    geminiUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create agent session: %w", err)
	}
	defer func() {
		_ = g.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	stream := g.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: renderTranscript(messages)},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent stream error: %w", err)
		}
		if event != nil && event.IsFinalResponse() && event.Content != nil && len(event.Content.Parts) > 0 {
			output = event.Content.Parts[0].Text
		}
	}
	if output == "" {
		return "", fmt.Errorf("empty agent response")
	}
	return output, nil
}

// renderTranscript flattens the exchange into one user turn: the system block
// first, prior turns labelled by author, the newest human message last.
func renderTranscript(messages []Message) string {
	system, rest := splitSystem(messages)
	if system == "" && len(rest) == 1 {
		return rest[0].Content
	}

	var sb strings.Builder
	if system != "" {
		sb.WriteString(system)
		sb.WriteString("\n\n")
	}
	if len(rest) > 1 {
		sb.WriteString("=== CONVERSATION SO FAR ===\n")
		for _, m := range rest[:len(rest)-1] {
			sb.WriteString(speaker(m.Role))
			sb.WriteString(": ")
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	if len(rest) > 0 {
		sb.WriteString("HR: ")
		sb.WriteString(rest[len(rest)-1].Content)
	}
	return sb.String()
}

func speaker(r Role) string {
	if r == RoleAgent {
		return "Assistant"
	}
	return "HR"
}
