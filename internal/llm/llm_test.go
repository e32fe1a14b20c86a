package llm

import (
	"strings"
	"testing"
)

func TestRenderTranscriptSinglePrompt(t *testing.T) {
	if got := renderTranscript(Prompt("just this")); got != "just this" {
		t.Errorf("renderTranscript() = %q, want prompt unchanged", got)
	}
}

func TestRenderTranscriptSystemFirst(t *testing.T) {
	got := renderTranscript([]Message{
		{Role: RoleSystem, Content: "CONTEXT BLOCK"},
		{Role: RoleHuman, Content: "first question"},
		{Role: RoleAgent, Content: "first answer"},
		{Role: RoleHuman, Content: "second question"},
	})

	if !strings.HasPrefix(got, "CONTEXT BLOCK") {
		t.Errorf("transcript does not start with system block: %q", got)
	}
	for _, want := range []string{"HR: first question", "Assistant: first answer"} {
		if !strings.Contains(got, want) {
			t.Errorf("transcript missing %q: %q", want, got)
		}
	}
	if !strings.HasSuffix(got, "HR: second question") {
		t.Errorf("transcript does not end with newest question: %q", got)
	}
}

func TestSplitSystem(t *testing.T) {
	system, rest := splitSystem([]Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleHuman, Content: "q"},
	})
	if system != "a" {
		t.Errorf("system = %q, want a", system)
	}
	if len(rest) != 1 || rest[0].Content != "q" {
		t.Errorf("rest = %+v", rest)
	}
}
