// Package llm resolves a chat model from an ordered list of providers and
// normalises every provider's response to plain text.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem Role = "system"
	RoleHuman  Role = "human"
	RoleAgent  Role = "agent"
)

// Message is one entry of a model invocation.
type Message struct {
	Role    Role
	Content string
}

// Model is a resolved chat model.
type Model interface {
	Invoke(ctx context.Context, messages []Message) (string, error)
}

// Prompt wraps a single prompt as a one-message invocation.
func Prompt(text string) []Message {
	return []Message{{Role: RoleHuman, Content: text}}
}

// InvokePrompt sends a single prompt to m.
func InvokePrompt(ctx context.Context, m Model, prompt string) (string, error) {
	return m.Invoke(ctx, Prompt(prompt))
}

// splitSystem separates leading system messages from the rest of the exchange.
func splitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}

func checkMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("no messages to send")
	}
	return nil
}
