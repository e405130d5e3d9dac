package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator calls any OpenAI-compatible chat-completions endpoint
// in JSON mode. This is the default provider.
type OpenAIGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewOpenAIGenerator creates an OpenAI-compatible generator
func NewOpenAIGenerator(baseURL, apiKey, model string) (*OpenAIGenerator, error) {
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIGenerator{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// NewOpenAIGeneratorFromEnv creates the generator from environment variables
func NewOpenAIGeneratorFromEnv() (*OpenAIGenerator, error) {
	baseURL := os.Getenv("AI_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	apiKey := os.Getenv("AI_OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: AI_OPENAI_API_KEY not set")
	}

	return NewOpenAIGenerator(baseURL, apiKey, os.Getenv("AI_OPENAI_MODEL"))
}

// GenerateProfile sends a single prompt and parses the JSON-object
// response. One shot, no retry: a failed call surfaces to the caller.
func (g *OpenAIGenerator) GenerateProfile(ctx context.Context, input ProfileInput, style Style) (*GeneratedProfile, error) {
	prompt := buildPrompt(input, style)

	reqBody := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"response_format":       map[string]string{"type": "json_object"},
		"max_completion_tokens": 1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Printf("Completions API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return nil, fmt.Errorf("%w: API status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason,omitempty"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message,omitempty"`
			Type    string `json:"type,omitempty"`
		} `json:"error,omitempty"`
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		log.Printf("Failed to decode completions response. Body: %s", string(bodyBytes))
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if apiResp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, apiResp.Error.Message)
	}

	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message.Content == "" {
		log.Printf("Completions API returned no content. Full response: %s", string(bodyBytes))
		return nil, fmt.Errorf("%w: empty completion", ErrInvalidResponse)
	}

	return parseGenerated(apiResp.Choices[0].Message.Content)
}
