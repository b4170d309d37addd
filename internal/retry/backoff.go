package retry

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aura/internal/config"
)

// RetryConfig configures retry behavior with exponential backoff
type RetryConfig struct {
	MaxRetries int                  `json:"max_retries"` // Retries after the first attempt; 0 means one attempt
	BaseDelay  time.Duration        `json:"base_delay"`  // Delay before the first retry
	MaxDelay   time.Duration        `json:"max_delay"`   // Upper bound for any single delay
	Multiplier float64              `json:"multiplier"`  // Exponential backoff multiplier
	Jitter     bool                 `json:"jitter"`      // Spread delays by up to 10%
	LogRetries bool                 `json:"log_retries"` // Log each attempt
	RetryIf    func(err error) bool `json:"-"`           // Nil retries every error
}

// RetryResult contains information about the retry operation
type RetryResult struct {
	Attempts      int           `json:"attempts"`
	TotalDuration time.Duration `json:"total_duration"`
	LastError     error         `json:"-"`
	Success       bool          `json:"success"`
	RetryReasons  []string      `json:"retry_reasons"` // One reason per failed attempt
}

// NoRetryConfig runs the operation exactly once
func NoRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 0,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
		LogRetries: true,
		RetryIf:    IsRetryableError,
	}
}

// FromConfig builds an upstream retry policy from the [retry] section
func FromConfig(cfg config.RetryConfig) RetryConfig {
	rc := NoRetryConfig()
	rc.MaxRetries = cfg.MaxRetries
	if cfg.BaseDelay > 0 {
		rc.BaseDelay = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		rc.MaxDelay = cfg.MaxDelay
	}
	if rc.MaxDelay < rc.BaseDelay {
		rc.MaxDelay = rc.BaseDelay
	}
	return rc
}

// RetryWithBackoff executes an operation with exponential backoff retry logic
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation func() error, logger *zerolog.Logger) RetryResult {
	return RetryWithBackoffAndReason(ctx, config, func() (error, string) {
		err := operation()
		reason := "unknown_error"
		if err != nil {
			reason = err.Error()
		}
		return err, reason
	}, logger)
}

// RetryWithBackoffAndReason executes an operation with exponential backoff and custom reason tracking
func RetryWithBackoffAndReason(ctx context.Context, config RetryConfig, operation func() (error, string), logger *zerolog.Logger) RetryResult {
	startTime := time.Now()
	logf := func(event func(*zerolog.Logger) *zerolog.Event, msg string, attempt int, err error) {
		if !config.LogRetries || logger == nil {
			return
		}
		e := event(logger).Int("attempt", attempt).Int("max_attempts", config.MaxRetries+1)
		if err != nil {
			e = e.Err(err)
		}
		e.Msg(msg)
	}

	result := RetryResult{
		RetryReasons: make([]string, 0),
	}

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		err, reason := operation()
		if err == nil {
			result.Success = true
			result.LastError = nil
			result.TotalDuration = time.Since(startTime)
			if attempt > 0 {
				logf((*zerolog.Logger).Info, "Operation succeeded after retry", result.Attempts, nil)
			}
			return result
		}

		result.LastError = err
		result.RetryReasons = append(result.RetryReasons, reason)

		if attempt >= config.MaxRetries {
			result.TotalDuration = time.Since(startTime)
			if config.MaxRetries > 0 {
				logf((*zerolog.Logger).Warn, "Operation failed on final attempt", result.Attempts, err)
			}
			return result
		}

		if config.RetryIf != nil && !config.RetryIf(err) {
			result.TotalDuration = time.Since(startTime)
			logf((*zerolog.Logger).Debug, "Operation failed with non-retryable error", result.Attempts, err)
			return result
		}

		if ctx.Err() != nil {
			result.LastError = ctx.Err()
			result.TotalDuration = time.Since(startTime)
			return result
		}

		delay := calculateDelay(config, attempt)
		logf((*zerolog.Logger).Warn, "Operation failed, backing off before retry", result.Attempts, err)

		select {
		case <-ctx.Done():
			result.LastError = ctx.Err()
			result.TotalDuration = time.Since(startTime)
			return result
		case <-time.After(delay):
		}
	}

	result.TotalDuration = time.Since(startTime)
	return result
}

// calculateDelay returns baseDelay * multiplier^attempt, capped at MaxDelay, with optional jitter
func calculateDelay(config RetryConfig, attempt int) time.Duration {
	delay := float64(config.BaseDelay) * math.Pow(config.Multiplier, float64(attempt))

	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}

	if config.Jitter {
		jitterRange := delay * 0.1
		delay += (rand.Float64() - 0.5) * 2 * jitterRange
		if delay < 0 {
			delay = float64(config.BaseDelay)
		}
	}

	return time.Duration(delay)
}

// IsRetryableError reports whether an upstream failure is worth another attempt
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	errStr := strings.ToLower(err.Error())

	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"timeout",
		"temporary failure",
		"service unavailable",
		"too many requests",
		"rate limit",
		"status 429",
		"status 500",
		"status 502",
		"status 503",
		"status 504",
		"429",
		"502",
		"503",
		"504",
		"dns lookup failed",
		"no such host",
		"network unreachable",
		"broken pipe",
	}

	for _, retryable := range retryableErrors {
		if strings.Contains(errStr, retryable) {
			return true
		}
	}

	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF)
}
