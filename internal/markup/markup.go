// Package markup converts the markdown subset the model is asked to produce into HTML fragments.
//
// The conversion is an ordered list of regex rules applied once, front to back. Later rules
// match the tag shapes produced by earlier ones, so the order must not change: headings and
// inline spans run before newlines become <br>, and list merging runs right after list items
// are wrapped.
package markup

import "regexp"

// Style classes attached to generated elements
const (
	H1Class   = "text-3xl font-bold mb-4 mt-6"
	H2Class   = "text-2xl font-semibold mb-3 mt-5"
	H3Class   = "text-xl font-semibold mb-2 mt-4"
	CodeClass = "bg-gray-700 text-sm rounded px-1 py-0.5"
)

// Rule is a single substitution step
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply runs the rule over text
func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllString(text, r.Replacement)
}

// A line's content stops at \r as well as \n so CRLF input keeps the tags on one line.
var rules = []Rule{
	{Name: "h1", Pattern: regexp.MustCompile(`(?m)^# ([^\r\n]*)`), Replacement: `<h1 class="` + H1Class + `">${1}</h1>`},
	{Name: "h2", Pattern: regexp.MustCompile(`(?m)^## ([^\r\n]*)`), Replacement: `<h2 class="` + H2Class + `">${1}</h2>`},
	{Name: "h3", Pattern: regexp.MustCompile(`(?m)^### ([^\r\n]*)`), Replacement: `<h3 class="` + H3Class + `">${1}</h3>`},
	{Name: "bold", Pattern: regexp.MustCompile(`\*\*([^\r\n]*?)\*\*`), Replacement: `<strong>${1}</strong>`},
	{Name: "code", Pattern: regexp.MustCompile("`([^`]+)`"), Replacement: `<code class="` + CodeClass + `">${1}</code>`},
	{Name: "list-item", Pattern: regexp.MustCompile(`(?m)^\* ([^\r\n]*)`), Replacement: `<li>${1}</li>`},
	// Greedy and dot-all: everything from the first <li> to the last </li> becomes one list.
	{Name: "list-wrap", Pattern: regexp.MustCompile(`(?s)(<li>.*</li>)`), Replacement: `<ul>${1}</ul>`},
	// Only lists separated by nothing or a single whitespace character are merged.
	{Name: "list-merge", Pattern: regexp.MustCompile(`</ul>\s?<ul>`), Replacement: ``},
	{Name: "line-break", Pattern: regexp.MustCompile(`\n`), Replacement: `<br>`},
	{Name: "trim-before-list", Pattern: regexp.MustCompile(`<br><ul>`), Replacement: `<ul>`},
	{Name: "trim-after-list", Pattern: regexp.MustCompile(`</ul><br>`), Replacement: `</ul>`},
}

// ToHTML converts model output into display markup.
// The input is not sanitized; any HTML already present passes through.
func ToHTML(text string) string {
	for _, r := range rules {
		text = r.Apply(text)
	}
	return text
}
