package brief

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Placeholder is rendered in place of any field the client left out or sent empty.
const Placeholder = "Not provided"

// Brief is the design request submitted by the form client
type Brief struct {
	ProjectName    string `json:"projectName"`
	CoreProblem    string `json:"coreProblem"`
	TargetAudience string `json:"targetAudience"`
	PrimaryGoal    string `json:"primaryGoal"`
	Constraints    string `json:"constraints"`
	ExampleURLs    string `json:"exampleUrls"`
}

// ErrMalformed is returned when a request body is not a JSON object of string fields
var ErrMalformed = errors.New("malformed brief")

// Decode parses a request body into a Brief.
// Unknown keys are ignored. A null field counts as absent.
func Decode(data []byte) (Brief, error) {
	var b Brief
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return b, fmt.Errorf("%w: body is not a JSON object", ErrMalformed)
	}
	if err := json.Unmarshal(trimmed, &b); err != nil {
		return Brief{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return b, nil
}

// Field is one labelled line of the rendered brief
type Field struct {
	Label string
	Value string
}

// Fields returns the brief lines in the order they are sent upstream.
// Empty values are replaced with Placeholder; everything else is passed through untouched.
func (b Brief) Fields() []Field {
	return []Field{
		{Label: "Project Name", Value: orPlaceholder(b.ProjectName)},
		{Label: "Core Problem", Value: orPlaceholder(b.CoreProblem)},
		{Label: "Target Audience", Value: orPlaceholder(b.TargetAudience)},
		{Label: "Primary Goal / Success Metric", Value: orPlaceholder(b.PrimaryGoal)},
		{Label: "Known Constraints / Competitors", Value: orPlaceholder(b.Constraints)},
		{Label: "Example UI/UX URLs", Value: orPlaceholder(b.ExampleURLs)},
	}
}

// Text renders the brief as the user content segment of the prompt
func (b Brief) Text() string {
	var sb strings.Builder
	sb.WriteString("Here is the project brief. Please begin your analysis.\n\n")
	for _, f := range b.Fields() {
		sb.WriteString(fmt.Sprintf("**%s:** %s\n", f.Label, f.Value))
	}
	return sb.String()
}

func orPlaceholder(v string) string {
	if v == "" {
		return Placeholder
	}
	return v
}
