package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ProfileInput carries the profile fields embedded into the prompt.
type ProfileInput struct {
	FirstName      string
	LastName       string
	Role           string
	BusinessName   string
	WorkArea       string
	Skills         []string
	BackgroundText string
}

// GeneratedProfile is the constrained JSON shape the model must return.
type GeneratedProfile struct {
	AboutText string   `json:"aboutText"`
	Summary   string   `json:"summary"`
	Skills    []string `json:"skills"`
}

// Style selects the verbosity directive in the prompt.
type Style string

const (
	StyleSimple   Style = "simple"
	StyleDetailed Style = "detailed"
)

// Generator produces polished profile text from structured fields and
// free-text background. Calls are stateless and non-idempotent: the
// same input may yield different prose.
type Generator interface {
	GenerateProfile(ctx context.Context, input ProfileInput, style Style) (*GeneratedProfile, error)
}

var (
	ErrNotConfigured    = errors.New("text generation is not configured")
	ErrGenerationFailed = errors.New("failed to generate profile content")
	ErrInvalidResponse  = errors.New("model returned an invalid response")
)

// Provider represents the text-generation backend type
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// NewGeneratorFromEnv creates a generator from environment variables.
// AI_PROVIDER selects the backend; "openai" (any OpenAI-compatible
// endpoint) is the default, "gemini" uses the Google SDK.
func NewGeneratorFromEnv(ctx context.Context) (Generator, error) {
	provider := os.Getenv("AI_PROVIDER")
	if provider == "" {
		provider = string(ProviderOpenAI)
	}

	// Return a bare nil interface on failure. Returning the typed nil
	// from a provider constructor would defeat the callers' nil checks.
	switch Provider(provider) {
	case ProviderOpenAI:
		generator, err := NewOpenAIGeneratorFromEnv()
		if err != nil {
			return nil, err
		}
		return generator, nil
	case ProviderGemini:
		generator, err := NewGeminiGeneratorFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s", provider)
	}
}

// buildPrompt assembles the single prompt sent to the model. Optional
// fields are omitted entirely rather than rendered empty.
func buildPrompt(input ProfileInput, style Style) string {
	styleDirective := "Write short, clear, professional text."
	if style == StyleDetailed {
		styleDirective = "Write detailed, comprehensive text covering experience and expertise."
	}

	var b strings.Builder
	b.WriteString("You are a professional profile writer. Create a polished work profile for:\n\n")
	b.WriteString(fmt.Sprintf("Name: %s %s\n", input.FirstName, input.LastName))
	b.WriteString(fmt.Sprintf("Role: %s\n", input.Role))
	if input.BusinessName != "" {
		b.WriteString(fmt.Sprintf("Business name: %s\n", input.BusinessName))
	}
	if input.WorkArea != "" {
		b.WriteString(fmt.Sprintf("Work area: %s\n", input.WorkArea))
	}
	b.WriteString(fmt.Sprintf("Existing skills: %s\n", strings.Join(input.Skills, ", ")))
	if input.BackgroundText != "" {
		b.WriteString(fmt.Sprintf("Additional background: %s\n", input.BackgroundText))
	}
	b.WriteString("\n")
	b.WriteString(styleDirective)
	b.WriteString("\n\nReturn the answer as a JSON object with exactly these fields:\n")
	b.WriteString(`{
  "aboutText": "a professional paragraph about the worker (3-4 sentences)",
  "summary": "a short one-line description",
  "skills": ["an array of 4-6 professional skills/services"]
}`)
	b.WriteString("\n\nImportant: write in first person, in a professional and friendly tone.")

	return b.String()
}

// parseGenerated decodes the model output into the three required
// fields. Markdown code fences around the JSON are tolerated; anything
// else that fails to decode, or a missing field, fails the whole call.
func parseGenerated(text string) (*GeneratedProfile, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var generated GeneratedProfile
	if err := json.Unmarshal([]byte(trimmed), &generated); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if generated.AboutText == "" || generated.Summary == "" || generated.Skills == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidResponse)
	}

	return &generated, nil
}
