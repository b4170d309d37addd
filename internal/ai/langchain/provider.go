package langchain

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/config"
	"github.com/aura/internal/prompts"
)

// defaultMaxTokens is the Gemini output ceiling requested when nothing else is configured
const defaultMaxTokens = 8192

// LangchainProvider implements ai.Generator on top of a langchaingo model
type LangchainProvider struct {
	llm         llms.Model
	modelName   string
	temperature float64
}

// New wraps an already constructed model
func New(llm llms.Model, modelName string, temperature float64) *LangchainProvider {
	return &LangchainProvider{
		llm:         llm,
		modelName:   modelName,
		temperature: temperature,
	}
}

// NewGoogleAI builds a provider backed by langchaingo's googleai client
func NewGoogleAI(ctx context.Context, cfg config.GeminiConfig) (*LangchainProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash-preview-05-20"
	}

	opts := []googleai.Option{
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(modelName),
		googleai.WithDefaultMaxTokens(defaultMaxTokens),
	}

	log.Debug().
		Str("model", modelName).
		Int("max_tokens", defaultMaxTokens).
		Msg("Initializing googleai model")

	model, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return New(model, modelName, cfg.Temperature), nil
}

// Constructor adapts NewGoogleAI to ai.Constructor
func Constructor(ctx context.Context, cfg config.GeminiConfig) (ai.Generator, error) {
	return NewGoogleAI(ctx, cfg)
}

// Name returns the provider's name
func (p *LangchainProvider) Name() string {
	return config.BackendLangchain
}

// Generate sends the persona as a system message and the brief as a human message
func (p *LangchainProvider) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	if p.llm == nil {
		return "", fmt.Errorf("LLM not initialized")
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, prompt.System),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt.User),
	}

	callOptions := []llms.CallOption{llms.WithModel(p.modelName)}
	if p.temperature > 0 {
		callOptions = append(callOptions, llms.WithTemperature(p.temperature))
	}

	resp, err := p.llm.GenerateContent(ctx, messages, callOptions...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrUpstream, err)
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		log.Error().Str("model", p.modelName).Msg("Unexpected API response structure: no choices")
		return "", fmt.Errorf("%w: no choices", ai.ErrUnexpectedShape)
	}

	choice := resp.Choices[0]
	if choice.Content == "" {
		log.Error().
			Str("model", p.modelName).
			Str("stop_reason", choice.StopReason).
			Msg("Unexpected API response structure: empty content")
		return "", fmt.Errorf("%w: empty content", ai.ErrUnexpectedShape)
	}

	return choice.Content, nil
}
