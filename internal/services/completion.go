package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vocalis-backend/internal/models"
)

// CompletionProvider turns a message sequence into generated text for one
// model candidate. Implementations must be safe for concurrent use.
type CompletionProvider interface {
	Complete(ctx context.Context, messages []models.ChatMessage, model string) (string, error)
	Name() string
}

// GroqClient calls the Groq OpenAI-compatible chat completions API.
type GroqClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGroqClient(baseURL, apiKey string, timeout time.Duration) *GroqClient {
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}

	return &GroqClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *GroqClient) Name() string { return "groq" }

type groqChatRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	TopP        float64              `json:"top_p"`
	Stream      bool                 `json:"stream"`
}

type groqChatResponse struct {
	Choices []struct {
		Message models.ChatMessage `json:"message"`
	} `json:"choices"`
}

type groqErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *GroqClient) Complete(ctx context.Context, messages []models.ChatMessage, model string) (string, error) {
	reqBody := groqChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network failures and timeouts are retryable against the next candidate.
		return "", &ProviderError{Provider: "groq", Message: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		msg := string(body)

		var apiErr groqErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}

		return "", &ProviderError{
			Provider:   "groq",
			StatusCode: resp.StatusCode,
			Message:    msg,
			Transient:  resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var chatResp groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", &ProviderError{Provider: "groq", Message: "response contained no choices", Transient: true}
	}

	return chatResp.Choices[0].Message.Content, nil
}
