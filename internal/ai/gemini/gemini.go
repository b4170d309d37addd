package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/config"
	"github.com/aura/internal/prompts"
)

// APIURLFormat is the generateContent endpoint; the verbs are model then API key
var APIURLFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// DefaultModel is used when the configuration leaves the model empty
const DefaultModel = "gemini-2.5-flash-preview-05-20"

// maxLoggedBody bounds how much of an upstream body ends up in a log line
const maxLoggedBody = 2048

// GeminiProvider implements ai.Generator against the Gemini REST API
type GeminiProvider struct {
	TestableFields TestableFields
}

// TestableFields holds the provider settings; exported so tests can point the
// provider at a mock server.
type TestableFields struct {
	APIKey      string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

// New creates a new GeminiProvider
func New(cfg config.GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &GeminiProvider{
		TestableFields: TestableFields{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			HTTPClient:  &http.Client{},
		},
	}, nil
}

// Constructor adapts New to ai.Constructor
func Constructor(_ context.Context, cfg config.GeminiConfig) (ai.Generator, error) {
	return New(cfg)
}

// Name returns the provider's name
func (p *GeminiProvider) Name() string {
	return config.BackendREST
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// Is makes a StatusError match ai.ErrUpstream
func (e *StatusError) Is(target error) bool {
	return target == ai.ErrUpstream
}

// BuildRequest converts a prompt into the generateContent payload
func (p *GeminiProvider) BuildRequest(prompt prompts.Prompt) Request {
	req := Request{
		Contents: []Content{{Parts: []Part{{Text: prompt.User}}}},
		SystemInstruction: &Content{
			Parts: []Part{{Text: prompt.System}},
		},
	}
	if p.TestableFields.Temperature > 0 {
		temperature := p.TestableFields.Temperature
		req.GenerationConfig = &GenerationConfig{Temperature: &temperature}
	}
	return req
}

// Generate sends the prompt and returns the first candidate's text.
// It makes one request; retries and deadlines belong to the caller.
func (p *GeminiProvider) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	payload, err := encodeRequest(p.BuildRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := fmt.Sprintf(APIURLFormat, url.PathEscape(p.TestableFields.Model), url.QueryEscape(p.TestableFields.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := p.TestableFields.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	log.Debug().
		Str("model", p.TestableFields.Model).
		Int("system_len", len(prompt.System)).
		Int("user_len", len(prompt.User)).
		Msg("Calling Gemini generateContent")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrUpstream, redactKey(err, p.TestableFields.APIKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %w", ai.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(body), maxLoggedBody)).
			Msg("Gemini API error")
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	text, err := DecodeResponse(body)
	if err != nil {
		log.Error().
			Err(err).
			Str("body", truncate(string(body), maxLoggedBody)).
			Msg("Unexpected API response structure")
		return "", err
	}

	log.Debug().
		Str("model", p.TestableFields.Model).
		Int("text_len", len(text)).
		Msg("Gemini response decoded")

	return text, nil
}

// encodeRequest keeps brief text as written; <, > and & are not turned into \u escapes.
func encodeRequest(req Request) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(req); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// url.Error embeds the full request URL, which carries the key as a query parameter.
func redactKey(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	redacted := strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED")
	return &url.Error{Op: uerr.Op, URL: redacted, Err: uerr.Err}
}
