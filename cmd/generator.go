package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/ai/gemini"
	"github.com/aura/internal/ai/langchain"
	"github.com/aura/internal/config"
	"github.com/aura/internal/llm"
	"github.com/aura/internal/logging"
	"github.com/aura/internal/prompts"
	"github.com/aura/internal/retry"
)

// newFactory registers every supported backend
func newFactory() *ai.DefaultFactory {
	factory := ai.NewDefaultFactory()
	factory.Register(config.BackendREST, gemini.Constructor)
	factory.Register(config.BackendLangchain, langchain.Constructor)
	return factory
}

// buildGenerator creates the configured backend wrapped with timeout and retry handling
func buildGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, error) {
	generator, err := newFactory().Create(ctx, cfg.Gemini.Backend, cfg.Gemini)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", cfg.Gemini.Backend, err)
	}
	return llm.NewResilientClient(generator, retry.FromConfig(cfg.Retry), cfg.Gemini.Timeout), nil
}

// promptBuilder uses the persona file when one is configured
func promptBuilder(cfg *config.Config) (*prompts.PromptBuilder, error) {
	if cfg.Gemini.PersonaFile == "" {
		return prompts.NewPromptBuilder(), nil
	}
	data, err := os.ReadFile(cfg.Gemini.PersonaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}
	return prompts.NewPromptBuilderWithPersona(string(data)), nil
}

// loadConfig loads, validates and applies logging settings from the global flags
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level := c.String("log-level"); level != "" {
		cfg.Server.LogLevel = level
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logging.Setup(cfg.Server.LogLevel, cfg.Server.LogPretty); err != nil {
		return nil, err
	}
	return cfg, nil
}
