package main

import (
	"context"

	"github.com/muhammadolammi/hrworkflow/internal/config"
	"github.com/muhammadolammi/hrworkflow/internal/llm"
)

// providerChain lists the LLM backends in preference order.
func providerChain(cfg config.Config) []llm.Provider {
	return []llm.Provider{
		{
			Name:       "gemini",
			Credential: cfg.GeminiAPIKey,
			New: func(ctx context.Context) (llm.Model, error) {
				return llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.NetworkTimeout)
			},
		},
		{
			Name:       "deepseek",
			Credential: cfg.DeepSeekAPIKey,
			New: func(context.Context) (llm.Model, error) {
				return llm.NewDeepSeek(cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.NetworkTimeout)
			},
		},
		{
			Name:       "anthropic",
			Credential: cfg.AnthropicAPIKey,
			New: func(context.Context) (llm.Model, error) {
				return llm.NewClaude(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.NetworkTimeout)
			},
		},
	}
}
