package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"vocalis-backend/internal/models"
	"vocalis-backend/internal/services"
)

// AssistHandler serves the combined voice/text flows: transcription feeding
// the chat orchestrator in a single request.
type AssistHandler struct {
	chat        chatService
	transcriber services.Transcriber
}

func NewAssistHandler(chat chatService, transcriber services.Transcriber) *AssistHandler {
	return &AssistHandler{chat: chat, transcriber: transcriber}
}

// VoiceChat transcribes the uploaded audio and answers it in one round trip.
func (h *AssistHandler) VoiceChat(w http.ResponseWriter, r *http.Request) {
	audio, mimeType, filename, ok := readAudioUpload(w, r)
	if !ok {
		return
	}

	transcribed, err := h.transcriber.Transcribe(r.Context(), audio, mimeType, filename)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp, err := h.chat.Respond(r.Context(), models.ChatRequest{
		Message:             transcribed,
		ConversationHistory: parseHistoryField(r.FormValue("conversation_history")),
		SystemPrompt:        r.FormValue("system_prompt"),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.VoiceChatResponse{
		TranscribedText:     transcribed,
		Reply:               resp.Reply,
		ModelUsed:           resp.ModelUsed,
		ConversationHistory: resp.ConversationHistory,
	})
}

// Assist accepts a text message, an audio file, or both. When both are given
// the transcription is appended after the text message.
func (h *AssistHandler) Assist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		// Plain form posts without a file are also accepted.
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid form body", r))
			return
		}
	}

	message := r.FormValue("message")
	inputType := "text"
	var transcribed *string

	if file, header, err := r.FormFile("audio_file"); err == nil {
		defer file.Close()

		audio, readErr := io.ReadAll(file)
		if readErr != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read audio upload", r))
			return
		}
		if len(audio) == 0 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Empty audio file", r))
			return
		}

		text, err := h.transcriber.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"), header.Filename)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		inputType = "audio"
		transcribed = &text
		if message != "" {
			message = fmt.Sprintf("%s\n\n[Audio: %s]", message, text)
		} else {
			message = text
		}
	}

	if strings.TrimSpace(message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Provide either 'message' or 'audio_file'", r))
		return
	}

	resp, err := h.chat.Respond(r.Context(), models.ChatRequest{
		Message:             message,
		ConversationHistory: parseHistoryField(r.FormValue("conversation_history")),
		SystemPrompt:        r.FormValue("system_prompt"),
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.AssistResponse{
		InputType:           inputType,
		TranscribedText:     transcribed,
		Reply:               resp.Reply,
		ModelUsed:           resp.ModelUsed,
		ConversationHistory: resp.ConversationHistory,
	})
}

// parseHistoryField decodes the JSON-encoded history form field. A malformed
// value falls back to an empty history rather than failing the request.
func parseHistoryField(raw string) []models.ChatMessage {
	if raw == "" {
		return nil
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil
	}
	return history
}
