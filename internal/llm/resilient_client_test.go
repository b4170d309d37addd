package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/prompts"
	"github.com/aura/internal/retry"
)

// Mock generator for testing
type mockGenerator struct {
	responses []string
	errors    []error
	callCount int
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	i := m.callCount
	m.callCount++
	if i < len(m.errors) && m.errors[i] != nil {
		return "", m.errors[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return "default response", nil
}

// Slow mock generator for timeout testing
type slowMockGenerator struct {
	delay time.Duration
}

func (s *slowMockGenerator) Name() string { return "slow" }

func (s *slowMockGenerator) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	select {
	case <-time.After(s.delay):
		return "done", nil
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ai.ErrUpstream, ctx.Err())
	}
}

func fastRetry(maxRetries int) retry.RetryConfig {
	cfg := retry.NoRetryConfig()
	cfg.MaxRetries = maxRetries
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestResilientClient_DefaultsToSingleAttempt(t *testing.T) {
	mock := &mockGenerator{
		errors: []error{fmt.Errorf("%w: API request failed with status 503", ai.ErrUpstream)},
	}
	client := NewResilientClient(mock, retry.NoRetryConfig(), time.Second)

	_, err := client.Generate(context.Background(), prompts.Prompt{System: "s", User: "u"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ai.ErrUpstream) {
		t.Errorf("Expected upstream error, got %v", err)
	}
	if mock.callCount != 1 {
		t.Errorf("Expected exactly 1 call, got %d", mock.callCount)
	}
}

func TestResilientClient_RetriesWhenConfigured(t *testing.T) {
	mock := &mockGenerator{
		errors:    []error{errors.New("connection refused"), errors.New("service unavailable")},
		responses: []string{"", "", "# Hello"},
	}
	client := NewResilientClient(mock, fastRetry(3), time.Second)

	text, err := client.Generate(context.Background(), prompts.Prompt{})
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if text != "# Hello" {
		t.Errorf("Expected '# Hello', got %q", text)
	}
	if mock.callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", mock.callCount)
	}
}

func TestResilientClient_ShapeErrorsAreNotRetried(t *testing.T) {
	mock := &mockGenerator{
		errors: []error{fmt.Errorf("%w: no candidates", ai.ErrUnexpectedShape)},
	}
	client := NewResilientClient(mock, fastRetry(3), time.Second)

	_, err := client.Generate(context.Background(), prompts.Prompt{})
	if !errors.Is(err, ai.ErrUnexpectedShape) {
		t.Errorf("Expected shape error, got %v", err)
	}
	if mock.callCount != 1 {
		t.Errorf("Expected 1 call, got %d", mock.callCount)
	}
}

func TestResilientClient_Timeout(t *testing.T) {
	client := NewResilientClient(&slowMockGenerator{delay: time.Second}, retry.NoRetryConfig(), 20*time.Millisecond)

	start := time.Now()
	_, err := client.Generate(context.Background(), prompts.Prompt{})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected timeout error, got nil")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if !errors.Is(err, ai.ErrUpstream) {
		t.Errorf("Expected upstream error, got %v", err)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("Timeout took too long: %v", elapsed)
	}
}

func TestResilientClient_ZeroTimeoutKeepsCallerContext(t *testing.T) {
	client := NewResilientClient(&slowMockGenerator{delay: 10 * time.Millisecond}, retry.NoRetryConfig(), 0)

	text, err := client.Generate(context.Background(), prompts.Prompt{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "done" {
		t.Errorf("Expected 'done', got %q", text)
	}
}

func TestResilientClient_Accessors(t *testing.T) {
	cfg := fastRetry(2)
	client := NewResilientClient(&mockGenerator{}, cfg, 5*time.Second)

	if client.Name() != "mock" {
		t.Errorf("Expected name 'mock', got %q", client.Name())
	}
	if client.Timeout() != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", client.Timeout())
	}
	if client.RetryConfig().MaxRetries != 2 {
		t.Errorf("Expected 2 retries, got %d", client.RetryConfig().MaxRetries)
	}
}

var _ ai.Generator = (*ResilientClient)(nil)
