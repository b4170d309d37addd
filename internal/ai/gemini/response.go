package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/aura/internal/ai"
)

// Part is one text fragment of a content block
type Part struct {
	Text string `json:"text"`
}

// Content is a list of parts, optionally tagged with a role
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries optional sampling settings
type GenerationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

// Request is the generateContent payload
type Request struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Response is the subset of the generateContent response the service reads.
// Every level is optional on the wire.
type Response struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

// Candidate is one completion
type Candidate struct {
	Content      *Content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

// PromptFeedback is present when the prompt itself was blocked
type PromptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Shape failures, all matching ai.ErrUnexpectedShape
var (
	ErrInvalidJSON  = fmt.Errorf("%w: body is not valid JSON", ai.ErrUnexpectedShape)
	ErrNoCandidates = fmt.Errorf("%w: no candidates", ai.ErrUnexpectedShape)
	ErrNoContent    = fmt.Errorf("%w: candidate has no content", ai.ErrUnexpectedShape)
	ErrNoParts      = fmt.Errorf("%w: content has no parts", ai.ErrUnexpectedShape)
	ErrEmptyText    = fmt.Errorf("%w: first part has no text", ai.ErrUnexpectedShape)
)

// DecodeResponse extracts candidates[0].content.parts[0].text.
// Any missing or empty level fails closed with one of the shape errors above.
func DecodeResponse(body []byte) (string, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w (block reason %s)", ErrNoCandidates, resp.PromptFeedback.BlockReason)
		}
		return "", ErrNoCandidates
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", ErrNoContent
	}
	if len(candidate.Content.Parts) == 0 {
		return "", ErrNoParts
	}
	if candidate.Content.Parts[0].Text == "" {
		return "", ErrEmptyText
	}

	return candidate.Content.Parts[0].Text, nil
}
