package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// ErrNotConfigured is returned by generators that have no credentials
var ErrNotConfigured = errors.New("text generator not configured")

// TextGenerator sends one prompt to a language model and returns its text
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// TenantIdentity is what the summary knows about the tenant
type TenantIdentity struct {
	Name       string
	Profession string
}

// DocumentRef is one line of the tenant's document list
type DocumentRef struct {
	Name     string
	Category string
}

// Assistant builds prompts and never fails: upstream errors turn into placeholder text.
type Assistant struct {
	gen     TextGenerator
	timeout time.Duration
}

// NewAssistant wraps gen. A nil gen always yields placeholders.
func NewAssistant(gen TextGenerator, timeout time.Duration) *Assistant {
	return &Assistant{gen: gen, timeout: timeout}
}

// Summarize writes a short tenant summary for rental applications
func (a *Assistant) Summarize(ctx context.Context, id TenantIdentity, docs []DocumentRef) string {
	return a.generate(ctx, "tenant summary", summaryPrompt(id, docs), func() string {
		return summaryPlaceholder(id, docs)
	})
}

// ExplainMatch says in one sentence why a listing suits the stated preferences
func (a *Assistant) ExplainMatch(ctx context.Context, listingTitle, preferences string) string {
	return a.generate(ctx, "match explanation", matchPrompt(listingTitle, preferences), func() string {
		return matchPlaceholder(listingTitle)
	})
}

func (a *Assistant) generate(ctx context.Context, what, prompt string, fallback func() string) string {
	if a.gen == nil {
		return fallback()
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	text, err := a.gen.GenerateText(ctx, prompt)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			log.Printf("ai: %s generation failed: %v", what, err)
		}
		return fallback()
	}
	if text = strings.TrimSpace(text); text == "" {
		log.Printf("ai: %s generation returned empty text", what)
		return fallback()
	}
	return text
}

func summaryPrompt(id TenantIdentity, docs []DocumentRef) string {
	var b strings.Builder
	b.WriteString("Generate a short, professional, and friendly tenant summary for a rental application.\n")
	b.WriteString("The summary should be about 2-3 sentences long.\n")
	b.WriteString("Use the following information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", id.Name)
	fmt.Fprintf(&b, "- Profession: %s\n", orDefault(id.Profession, "Not specified"))
	b.WriteString("- Documents Provided:\n")
	if len(docs) == 0 {
		b.WriteString("  - None yet\n")
	}
	for _, d := range docs {
		fmt.Fprintf(&b, "  - %s (%s)\n", d.Name, d.Category)
	}
	b.WriteString("\nExample: \"Sarah, a 29-year-old marketing professional, is a reliable and tidy tenant with excellent references and proof of income. She is looking for a long-term rental in a quiet neighbourhood.\"\n\n")
	fmt.Fprintf(&b, "Generate a new summary for %s:", id.Name)
	return b.String()
}

func matchPrompt(title, preferences string) string {
	return fmt.Sprintf("Explain in one friendly sentence why this property is a good match for the user.\n"+
		"- Property: %q\n"+
		"- User's preferences: %q\n\n"+
		"Example: \"This apartment in Ranelagh is a great fit because it matches your desired location and is within your budget for a 2-bedroom place.\"\n\n"+
		"Generate a new explanation:", title, preferences)
}

func summaryPlaceholder(id TenantIdentity, docs []DocumentRef) string {
	name := orDefault(id.Name, "This applicant")
	profession := orDefault(id.Profession, "professional")

	if len(docs) == 0 {
		return fmt.Sprintf("%s, a %s, is a reliable tenant looking for a new home in Dublin.", name, profession)
	}
	categories := make([]string, 0, len(docs))
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		c := strings.ToLower(d.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return fmt.Sprintf("%s, a %s, is a reliable tenant with supporting documents including %s. Seeking a new home in Dublin.",
		name, profession, strings.Join(categories, ", "))
}

func matchPlaceholder(title string) string {
	return fmt.Sprintf("%s is a good match because it meets your criteria for location and price, and its features align with your preferences.",
		orDefault(title, "This property"))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
