package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/prompts"
	"github.com/aura/internal/retry"
)

// ResilientClient wraps a generator with a deadline and an optional retry policy.
// It is an ai.Generator itself.
type ResilientClient struct {
	generator   ai.Generator
	retryConfig retry.RetryConfig
	timeout     time.Duration
	logger      *zerolog.Logger
}

// NewResilientClient creates a new resilient wrapper
func NewResilientClient(generator ai.Generator, config retry.RetryConfig, timeout time.Duration) *ResilientClient {
	logger := log.Logger.With().Str("component", "llm").Str("backend", generator.Name()).Logger()
	return &ResilientClient{
		generator:   generator,
		retryConfig: config,
		timeout:     timeout,
		logger:      &logger,
	}
}

// Name returns the wrapped backend's name
func (rc *ResilientClient) Name() string {
	return rc.generator.Name()
}

// Generate runs the wrapped generator under the configured deadline.
// A zero timeout leaves the caller's context untouched.
func (rc *ResilientClient) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	if rc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.timeout)
		defer cancel()
	}

	var text string
	result := retry.RetryWithBackoff(ctx, rc.retryConfig, func() error {
		out, err := rc.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, rc.logger)

	if result.Success {
		if result.Attempts > 1 {
			rc.logger.Info().
				Int("attempts", result.Attempts).
				Dur("duration", result.TotalDuration).
				Msg("Upstream call succeeded after retries")
		}
		return text, nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		rc.logger.Warn().
			Dur("timeout", rc.timeout).
			Dur("duration", result.TotalDuration).
			Msg("Upstream call exceeded its deadline")
	}

	err := result.LastError
	if err != nil && !errors.Is(err, ai.ErrUpstream) && !errors.Is(err, ai.ErrUnexpectedShape) &&
		(errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) {
		// The deadline fired between attempts; report it as an upstream failure.
		err = errors.Join(ai.ErrUpstream, err)
	}
	return "", err
}

// RetryConfig returns the current retry configuration
func (rc *ResilientClient) RetryConfig() retry.RetryConfig {
	return rc.retryConfig
}

// Timeout returns the per-request deadline
func (rc *ResilientClient) Timeout() time.Duration {
	return rc.timeout
}
