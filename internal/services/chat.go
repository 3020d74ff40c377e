package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vocalis-backend/internal/models"
)

// maxHistoryTurns bounds the conversation history echoed back to the client.
const maxHistoryTurns = 10

type weatherProvider interface {
	Lookup(ctx context.Context, location string) (*models.WeatherResponse, error)
}

// ChatService orchestrates completion calls: it builds the effective message
// sequence, walks the ordered model fallback list, and performs at most one
// weather augmentation round-trip per request.
type ChatService struct {
	provider       CompletionProvider
	weather        weatherProvider
	parser         *ToolCallParser
	models         []string
	systemPrompt   string
	forceLanguage  string
	weatherEnabled bool
	callTimeout    time.Duration
}

func NewChatService(
	provider CompletionProvider,
	weather weatherProvider,
	modelCandidates []string,
	systemPrompt string,
	forceLanguage string,
	weatherEnabled bool,
	triggerPrefix string,
	callTimeout time.Duration,
) *ChatService {
	return &ChatService{
		provider:       provider,
		weather:        weather,
		parser:         NewToolCallParser(triggerPrefix),
		models:         modelCandidates,
		systemPrompt:   systemPrompt,
		forceLanguage:  forceLanguage,
		weatherEnabled: weatherEnabled,
		callTimeout:    callTimeout,
	}
}

// Models returns the configured fallback list in order.
func (s *ChatService) Models() []string {
	out := make([]string, len(s.models))
	copy(out, s.models)
	return out
}

// Respond answers a chat request. It fails with *AllModelsExhaustedError only
// when every candidate in the fallback list has failed; weather enrichment
// failures are always recovered locally.
func (s *ChatService) Respond(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, &ValidationError{Fields: map[string]string{"message": "Message is required"}}
	}
	if err := validateHistory(req.ConversationHistory); err != nil {
		return nil, err
	}

	messages := s.buildMessages(req)

	reply, modelUsed, err := s.completeWithFallback(ctx, messages)
	if err != nil {
		return nil, err
	}

	if s.weatherEnabled && s.weather != nil {
		if call := s.parser.Parse(reply); call != nil {
			reply, modelUsed = s.augmentWithWeather(ctx, messages, reply, modelUsed, call)
		}
	}

	return &models.ChatResponse{
		Reply:               reply,
		ModelUsed:           modelUsed,
		ConversationHistory: updatedHistory(req.ConversationHistory, req.Message, reply),
	}, nil
}

// Translate converts text between English and Japanese through the same
// fallback loop as chat.
func (s *ChatService) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Fields: map[string]string{"text": "Text is required"}}
	}

	var language string
	switch targetLang {
	case "en":
		language = "English"
	case "ja":
		language = "Japanese"
	default:
		return "", &ValidationError{Fields: map[string]string{"target_lang": "target_lang must be 'en' or 'ja'"}}
	}

	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: fmt.Sprintf(
			"You are a professional translator. Translate the user's text into %s. "+
				"Return only the translation, with no explanations or quotes.", language)},
		{Role: models.RoleUser, Content: text},
	}

	translated, _, err := s.completeWithFallback(ctx, messages)
	if err != nil {
		return "", err
	}
	return translated, nil
}

// buildMessages assembles system prompt + history + new user turn. The
// caller's history slice is never modified.
func (s *ChatService) buildMessages(req models.ChatRequest) []models.ChatMessage {
	systemPrompt := s.systemPrompt
	if req.SystemPrompt != "" {
		systemPrompt = req.SystemPrompt
	}
	if s.forceLanguage != "" {
		systemPrompt += fmt.Sprintf("\n\nAlways respond in %s.", s.forceLanguage)
	}
	if s.weatherEnabled {
		systemPrompt += fmt.Sprintf(
			"\n\nWhen the user asks about current weather for a place and you have no live data yet, "+
				"reply with only the marker %s <location>%s and nothing else.",
			s.parser.triggerPrefix, triggerSuffix)
	}

	messages := make([]models.ChatMessage, 0, len(req.ConversationHistory)+2)
	messages = append(messages, models.ChatMessage{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, req.ConversationHistory...)
	messages = append(messages, models.ChatMessage{Role: models.RoleUser, Content: req.Message})
	return messages
}

// completeWithFallback tries each candidate in configured order, one attempt
// per candidate. Any failure advances to the next candidate; transient and
// permanent provider errors are deliberately treated alike here.
func (s *ChatService) completeWithFallback(ctx context.Context, messages []models.ChatMessage) (string, string, error) {
	var lastErr error

	for _, model := range s.models {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		text, err := s.provider.Complete(callCtx, messages, model)
		cancel()

		if err == nil {
			return text, model, nil
		}

		lastErr = err
		log.Printf("model %s failed, advancing fallback: %v", model, err)
	}

	return "", "", &AllModelsExhaustedError{Attempts: len(s.models), LastErr: lastErr}
}

// augmentWithWeather performs the single weather round-trip: fetch live data
// for the requested location, append it as one extra turn, and re-run the
// fallback loop for a weather-informed reply. Every failure path returns the
// original completion so enrichment never surfaces an error to the caller.
func (s *ChatService) augmentWithWeather(
	ctx context.Context,
	messages []models.ChatMessage,
	original string,
	originalModel string,
	call *WeatherToolCall,
) (string, string) {
	weather, err := s.weather.Lookup(ctx, call.Location)
	if err != nil {
		log.Printf("weather lookup for %q failed, keeping original reply: %v", call.Location, err)
		return original, originalModel
	}

	augmented := make([]models.ChatMessage, 0, len(messages)+1)
	augmented = append(augmented, messages...)
	augmented = append(augmented, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: fmt.Sprintf("[Weather Information: %s]", FormatWeatherForLLM(weather)),
	})

	reply, modelUsed, err := s.completeWithFallback(ctx, augmented)
	if err != nil {
		log.Printf("weather-informed completion failed, keeping original reply: %v", err)
		return original, originalModel
	}

	// A second trigger in the augmented reply is not re-processed; strip it
	// so the marker never reaches the client.
	return s.parser.Strip(reply), modelUsed
}

func validateHistory(history []models.ChatMessage) error {
	for i, msg := range history {
		switch msg.Role {
		case models.RoleUser, models.RoleAssistant, models.RoleSystem:
		default:
			return &ValidationError{Fields: map[string]string{
				"conversation_history": fmt.Sprintf("invalid role %q at index %d", msg.Role, i),
			}}
		}
		if strings.TrimSpace(msg.Content) == "" {
			return &ValidationError{Fields: map[string]string{
				"conversation_history": fmt.Sprintf("empty content at index %d", i),
			}}
		}
	}
	return nil
}

// updatedHistory appends the new user and assistant turns and keeps only the
// last maxHistoryTurns messages.
func updatedHistory(history []models.ChatMessage, userMessage, reply string) []models.ChatMessage {
	updated := make([]models.ChatMessage, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		models.ChatMessage{Role: models.RoleUser, Content: userMessage},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply},
	)

	if len(updated) > maxHistoryTurns {
		updated = updated[len(updated)-maxHistoryTurns:]
	}
	return updated
}
