package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const deepseekURL = "https://api.deepseek.com/v1/chat/completions"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DeepSeek talks to the OpenAI-compatible DeepSeek chat completions API.
type DeepSeek struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	httpClient  *http.Client
}

// NewDeepSeek returns a client bounded by timeout.
func NewDeepSeek(apiKey, model string, timeout time.Duration) (*DeepSeek, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("deepseek api key is empty")
	}
	if model == "" {
		model = "deepseek-chat"
	}
	return &DeepSeek{
		apiKey:      apiKey,
		model:       model,
		endpoint:    deepseekURL,
		temperature: 0.3,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// Invoke implements Model.
func (d *DeepSeek) Invoke(ctx context.Context, messages []Message) (string, error) {
	if err := checkMessages(messages); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model:       d.model,
		Temperature: d.temperature,
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: openAIRole(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek request failed: %w", err)
	}
	defer resp.Body.Close()

	buff, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepseek api returned status: %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(buff, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse deepseek response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content in deepseek response")
	}
	return parsed.Choices[0].Message.Content, nil
}

func openAIRole(r Role) string {
	switch r {
	case RoleSystem:
		return "system"
	case RoleAgent:
		return "assistant"
	default:
		return "user"
	}
}
