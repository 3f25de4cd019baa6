package bootstrap

import (
	"context"
	"errors"
	"fmt"

	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BuildLLMClient wires the chat model from config. When both providers
// hold keys the configured one is primary and the other takes over on
// failure. The embedder is OpenAI-backed and nil when only Gemini is
// configured.
func BuildLLMClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (llm.Client, llm.Embedder, error) {
	if cfg == nil {
		return nil, nil, errors.New("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	var openaiClient *llm.OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		c, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.EmbeddingModel, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: openai client: %w", err)
		}
		openaiClient = c
	}

	var geminiClient *llm.GeminiClient
	if cfg.GeminiAPIKey != "" {
		c, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: gemini client: %w", err)
		}
		geminiClient = c
	}

	var embedder llm.Embedder
	if openaiClient != nil {
		embedder = openaiClient
	}

	switch {
	case openaiClient != nil && geminiClient != nil:
		if cfg.LLMProvider == "gemini" {
			logger.Info("llm: gemini primary with openai fallback", "model", cfg.GeminiModel)
			return llm.NewFallbackClient(geminiClient, openaiClient, logger), embedder, nil
		}
		logger.Info("llm: openai primary with gemini fallback", "model", cfg.OpenAIModel)
		return llm.NewFallbackClient(openaiClient, geminiClient, logger), embedder, nil
	case openaiClient != nil:
		logger.Info("llm: openai", "model", cfg.OpenAIModel)
		return openaiClient, embedder, nil
	case geminiClient != nil:
		logger.Info("llm: gemini", "model", cfg.GeminiModel)
		return geminiClient, nil, nil
	default:
		return nil, nil, errors.New("bootstrap: no LLM provider configured, set OPENAI_API_KEY or GEMINI_API_KEY")
	}
}
