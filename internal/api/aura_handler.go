package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/brief"
	"github.com/aura/internal/markup"
	"github.com/aura/internal/prompts"
)

// GenericErrorMessage is the only failure text a client ever sees
const GenericErrorMessage = "An internal error occurred. Please try again later."

// Failure kinds recorded on the log line
const (
	failureMalformedInput = "malformed_input"
	failureUpstream       = "upstream_failure"
	failureUpstreamShape  = "upstream_shape"
	failureInternal       = "internal"
)

// AskResponse is the success body
type AskResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the failure body
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuraHandler turns a design brief into Aura's HTML analysis
type AuraHandler struct {
	generator ai.Generator
	builder   *prompts.PromptBuilder
}

// NewAuraHandler creates a handler that sends every brief to generator.
// A nil builder uses the Aura persona.
func NewAuraHandler(generator ai.Generator, builder *prompts.PromptBuilder) *AuraHandler {
	if builder == nil {
		builder = prompts.NewPromptBuilder()
	}
	return &AuraHandler{
		generator: generator,
		builder:   builder,
	}
}

// AskAura handles one brief submission
func (h *AuraHandler) AskAura(c echo.Context) error {
	req := c.Request()
	if req.Method != http.MethodPost {
		return c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return h.fail(c, failureMalformedInput, err)
	}

	b, err := brief.Decode(body)
	if err != nil {
		return h.fail(c, failureMalformedInput, err)
	}

	prompt := h.builder.BuildBriefPrompt(b)

	text, err := h.generator.Generate(req.Context(), prompt)
	if err != nil {
		return h.fail(c, classify(err), err)
	}

	return writeJSON(c, http.StatusOK, AskResponse{Response: markup.ToHTML(text)})
}

func (h *AuraHandler) fail(c echo.Context, kind string, err error) error {
	log.Error().
		Err(err).
		Str("failure", kind).
		Str("backend", h.generator.Name()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("Error in askAura")
	return writeFailure(c)
}

func classify(err error) string {
	switch {
	case errors.Is(err, brief.ErrMalformed):
		return failureMalformedInput
	case errors.Is(err, ai.ErrUnexpectedShape):
		return failureUpstreamShape
	case errors.Is(err, ai.ErrUpstream):
		return failureUpstream
	default:
		return failureInternal
	}
}

func writeFailure(c echo.Context) error {
	return writeJSON(c, http.StatusInternalServerError, ErrorResponse{Error: GenericErrorMessage})
}

// writeJSON encodes without HTML escaping so the markup arrives as written
func writeJSON(c echo.Context, code int, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return c.Blob(code, echo.MIMEApplicationJSON, bytes.TrimRight(buf.Bytes(), "\n"))
}
