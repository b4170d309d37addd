package prompts

import (
	"github.com/aura/internal/brief"
)

// Prompt is the two-segment request sent upstream
type Prompt struct {
	// System carries the persona document
	System string
	// User carries the rendered brief
	User string
}

// PromptBuilder assembles prompts for a brief
type PromptBuilder struct {
	persona string
}

// NewPromptBuilder creates a builder that uses the Aura persona
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{persona: AuraMasterPrompt}
}

// NewPromptBuilderWithPersona creates a builder with a custom system instruction
func NewPromptBuilderWithPersona(persona string) *PromptBuilder {
	if persona == "" {
		persona = AuraMasterPrompt
	}
	return &PromptBuilder{persona: persona}
}

// BuildBriefPrompt generates the prompt for one brief.
// The brief text is interpolated as-is; field values are not escaped.
func (pb *PromptBuilder) BuildBriefPrompt(b brief.Brief) Prompt {
	return Prompt{
		System: pb.persona,
		User:   b.Text(),
	}
}
