package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura/internal/ai"
	"github.com/aura/internal/ai/gemini"
	"github.com/aura/internal/brief"
	"github.com/aura/internal/prompts"
)

const sampleHTML = `<h1 class="text-3xl font-bold mb-4 mt-6">Title</h1><br><strong>bold</strong> and ` +
	`<code class="bg-gray-700 text-sm rounded px-1 py-0.5">code</code><ul><li>item1</li><br><li>item2</li></ul>`

// recordingGenerator captures the prompt and returns a canned reply
type recordingGenerator struct {
	text   string
	err    error
	calls  int
	prompt prompts.Prompt
}

func (g *recordingGenerator) Name() string { return "recording" }

func (g *recordingGenerator) Generate(ctx context.Context, prompt prompts.Prompt) (string, error) {
	g.calls++
	g.prompt = prompt
	return g.text, g.err
}

func newGeminiBackend(t *testing.T, handler http.HandlerFunc) ai.Generator {
	t.Helper()

	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	originalAPIURL := gemini.APIURLFormat
	gemini.APIURLFormat = mockServer.URL + "/v1beta/models/%s:generateContent?key=%s"
	t.Cleanup(func() { gemini.APIURLFormat = originalAPIURL })

	return &gemini.GeminiProvider{
		TestableFields: gemini.TestableFields{
			APIKey:     "test-key",
			Model:      "test-model",
			HTTPClient: mockServer.Client(),
		},
	}
}

func geminiReply(text string) string {
	payload, _ := json.Marshal(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
					"role":  "model",
				},
			},
		},
	})
	return string(payload)
}

func serve(h *AuraHandler, method, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, AskAuraPath, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.AskAura(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func assertGenericFailure(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, `{"error":"An internal error occurred. Please try again later."}`, rec.Body.String())
}

func TestAskAura_RejectsNonPost(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions} {
		t.Run(method, func(t *testing.T) {
			gen := &recordingGenerator{text: "unused"}
			rec := serve(NewAuraHandler(gen, nil), method, `{"projectName":"x"}`)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "Method Not Allowed", rec.Body.String())
			assert.NotContains(t, rec.Header().Get(echo.HeaderContentType), "json")
			assert.Zero(t, gen.calls)
		})
	}
}

func TestAskAura_SendsAllFieldsVerbatim(t *testing.T) {
	var payload gemini.Request
	backend := newGeminiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(data, &payload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiReply("ok")))
	})

	body := `{
		"projectName": "Nova <beta>",
		"coreProblem": "Users \"drop\" at step 2",
		"targetAudience": "Clinic managers & nurses",
		"primaryGoal": "Cut booking time in half",
		"constraints": "Must beat Calendly",
		"exampleUrls": "https://linear.app?x=1&y=2"
	}`
	rec := serve(NewAuraHandler(backend, nil), http.MethodPost, body)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, payload.Contents, 1)
	require.Len(t, payload.Contents[0].Parts, 1)
	user := payload.Contents[0].Parts[0].Text
	assert.Contains(t, user, "**Project Name:** Nova <beta>\n")
	assert.Contains(t, user, "**Core Problem:** Users \"drop\" at step 2\n")
	assert.Contains(t, user, "**Target Audience:** Clinic managers & nurses\n")
	assert.Contains(t, user, "**Primary Goal / Success Metric:** Cut booking time in half\n")
	assert.Contains(t, user, "**Known Constraints / Competitors:** Must beat Calendly\n")
	assert.Contains(t, user, "**Example UI/UX URLs:** https://linear.app?x=1&y=2\n")
	assert.NotContains(t, user, brief.Placeholder)

	require.NotNil(t, payload.SystemInstruction)
	require.Len(t, payload.SystemInstruction.Parts, 1)
	assert.Equal(t, prompts.AuraMasterPrompt, payload.SystemInstruction.Parts[0].Text)
	assert.NotContains(t, user, prompts.AuraMasterPrompt)
}

func TestAskAura_PlaceholderForMissingFields(t *testing.T) {
	gen := &recordingGenerator{text: "ok"}
	rec := serve(NewAuraHandler(gen, nil), http.MethodPost, `{"projectName":"Solo","coreProblem":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, gen.prompt.User, "**Project Name:** Solo\n")
	assert.Contains(t, gen.prompt.User, "**Core Problem:** Not provided\n")
	assert.Equal(t, 5, strings.Count(gen.prompt.User, brief.Placeholder))
	assert.Equal(t, prompts.AuraMasterPrompt, gen.prompt.System)
}

func TestAskAura_TransformsReply(t *testing.T) {
	backend := newGeminiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiReply("# Title\n**bold** and `code`\n* item1\n* item2")))
	})

	rec := serve(NewAuraHandler(backend, nil), http.MethodPost, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	var resp AskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, sampleHTML, resp.Response)
	assert.Equal(t, 1, strings.Count(resp.Response, "<ul>"))
	assert.NotContains(t, rec.Body.String(), `\u003c`)
}

func TestAskAura_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"empty candidates", http.StatusOK, `{"candidates":[]}`},
		{"no content", http.StatusOK, `{"candidates":[{"finishReason":"SAFETY"}]}`},
		{"no parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`},
		{"empty text", http.StatusOK, geminiReply("")},
		{"not json", http.StatusOK, `<html>proxy error</html>`},
		{"quota", http.StatusTooManyRequests, `{"error":{"message":"quota exceeded for key test-key"}}`},
		{"server error", http.StatusInternalServerError, `{"error":{"message":"boom"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newGeminiBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			})

			rec := serve(NewAuraHandler(backend, nil), http.MethodPost, `{"projectName":"x"}`)
			assertGenericFailure(t, rec)
			assert.NotContains(t, rec.Body.String(), "quota")
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestAskAura_EmptyCandidatesLogsRawResponse(t *testing.T) {
	var logs bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = original })

	backend := newGeminiBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[],"usageMetadata":{"promptTokenCount":12}}`))
	})

	rec := serve(NewAuraHandler(backend, nil), http.MethodPost, `{"projectName":"x"}`)
	assertGenericFailure(t, rec)

	out := logs.String()
	assert.Contains(t, out, `promptTokenCount`)
	assert.Contains(t, out, `"failure":"upstream_shape"`)
	assert.Contains(t, out, "Error in askAura")
	assert.NotContains(t, out, "test-key")
	assert.NotContains(t, rec.Body.String(), "candidates")
}

func TestAskAura_NetworkFailure(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := mockServer.URL
	mockServer.Close()

	originalAPIURL := gemini.APIURLFormat
	gemini.APIURLFormat = unreachable + "/v1beta/models/%s:generateContent?key=%s"
	t.Cleanup(func() { gemini.APIURLFormat = originalAPIURL })

	backend := &gemini.GeminiProvider{
		TestableFields: gemini.TestableFields{
			APIKey:     "test-key",
			Model:      "test-model",
			HTTPClient: &http.Client{},
		},
	}

	rec := serve(NewAuraHandler(backend, nil), http.MethodPost, `{"projectName":"x"}`)
	assertGenericFailure(t, rec)
}

func TestAskAura_MalformedBody(t *testing.T) {
	bodies := map[string]string{
		"empty":     "",
		"truncated": `{"projectName":`,
		"null":      "null",
		"array":     `["projectName"]`,
		"number":    `{"projectName":42}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			gen := &recordingGenerator{text: "unused"}
			rec := serve(NewAuraHandler(gen, nil), http.MethodPost, body)
			assertGenericFailure(t, rec)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestAskAura_GeneratorErrorIsNotEchoed(t *testing.T) {
	gen := &recordingGenerator{err: errors.New("secret internal detail")}
	rec := serve(NewAuraHandler(gen, nil), http.MethodPost, `{}`)
	assertGenericFailure(t, rec)
	assert.Equal(t, 1, gen.calls)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, failureMalformedInput, classify(brief.ErrMalformed))
	assert.Equal(t, failureUpstream, classify(&gemini.StatusError{StatusCode: 503}))
	assert.Equal(t, failureUpstreamShape, classify(gemini.ErrNoCandidates))
	assert.Equal(t, failureInternal, classify(errors.New("other")))
}
