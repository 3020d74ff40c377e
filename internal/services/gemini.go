package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"vocalis-backend/internal/models"
)

// GeminiClient is the alternative completion backend, selected with
// LLM_PROVIDER=gemini. Model candidates are Gemini model identifiers.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) Complete(ctx context.Context, messages []models.ChatMessage, modelID string) (string, error) {
	if len(messages) == 0 {
		return "", &ValidationError{Fields: map[string]string{"messages": "message sequence is empty"}}
	}

	model := c.client.GenerativeModel(modelID)
	model.SetTemperature(0.7)
	model.SetTopP(1)

	// Gemini takes the system prompt out of band.
	history := messages
	if history[0].Role == models.RoleSystem {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(history[0].Content)},
		}
		history = history[1:]
	}

	if len(history) == 0 {
		return "", &ValidationError{Fields: map[string]string{"messages": "no user turn to complete"}}
	}

	last := history[len(history)-1]
	cs := model.StartChat()
	for _, msg := range history[:len(history)-1] {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &ProviderError{Provider: "gemini", Message: "empty completion", Transient: true}
	}

	return text, nil
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &ProviderError{
			Provider:   "gemini",
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Transient:  apiErr.Code == 429 || apiErr.Code >= 500,
		}
	}
	return &ProviderError{Provider: "gemini", Message: err.Error(), Transient: true}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
