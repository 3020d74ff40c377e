package models

// Message roles accepted in conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage represents a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message             string        `json:"message"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
	SystemPrompt        string        `json:"system_prompt,omitempty"`
}

// ChatResponse is the reply from the assistant.
type ChatResponse struct {
	Reply               string        `json:"reply"`
	ModelUsed           string        `json:"model_used"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
}

// VoiceChatResponse is returned by the voice chat flow (transcription + chat).
type VoiceChatResponse struct {
	TranscribedText     string        `json:"transcribed_text"`
	Reply               string        `json:"reply"`
	ModelUsed           string        `json:"model_used"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
}

// AssistResponse is the unified reply for text and/or audio input.
type AssistResponse struct {
	InputType           string        `json:"input_type"` // "text" or "audio"
	TranscribedText     *string       `json:"transcribed_text,omitempty"`
	Reply               string        `json:"reply"`
	ModelUsed           string        `json:"model_used"`
	ConversationHistory []ChatMessage `json:"conversation_history"`
}

// TranslateRequest asks for a translation of arbitrary text.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"` // "en" or "ja"
}

// TranslateResponse carries the translated text.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
}
