package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// Transcriber converts uploaded audio to text. Pure pass-through wrappers; no
// orchestration logic lives behind this interface.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType, filename string) (string, error)
}

// ElevenLabsService wraps the ElevenLabs speech-to-text and text-to-speech
// REST APIs.
type ElevenLabsService struct {
	baseURL    string
	apiKey     string
	sttModel   string
	httpClient *http.Client
}

func NewElevenLabsService(apiKey, sttModel string) *ElevenLabsService {
	return &ElevenLabsService{
		baseURL:  "https://api.elevenlabs.io/v1",
		apiKey:   apiKey,
		sttModel: sttModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type elevenLabsSTTResponse struct {
	Text          string `json:"text"`
	Transcription string `json:"transcription"`
}

// Transcribe uploads audio to the ElevenLabs Scribe endpoint and returns the
// transcribed text.
func (s *ElevenLabsService) Transcribe(ctx context.Context, audio []byte, mimeType, filename string) (string, error) {
	if len(audio) == 0 {
		return "", &ValidationError{Fields: map[string]string{"audio_file": "Empty audio file"}}
	}

	if filename == "" {
		filename = "recording.webm"
	}
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// ElevenLabs expects the multipart field name to be "file".
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.WriteField("model_id", s.sttModel); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/speech-to-text", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "elevenlabs", Message: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{
			Provider:   "elevenlabs",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
			Transient:  resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var result elevenLabsSTTResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	text := result.Text
	if text == "" {
		text = result.Transcription
	}
	if text == "" {
		return "", &ProviderError{Provider: "elevenlabs", Message: "no text field in response"}
	}

	return text, nil
}

type elevenLabsTTSRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize converts text to audio with the given voice and model, returning
// the raw audio bytes (audio/mpeg).
func (s *ElevenLabsService) Synthesize(ctx context.Context, text, voiceID, model string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Fields: map[string]string{"text": "Text is required"}}
	}

	jsonBody, err := json.Marshal(elevenLabsTTSRequest{Text: text, ModelID: model})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: "elevenlabs", Message: err.Error(), Transient: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Provider:   "elevenlabs",
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(raw)),
			Transient:  resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: "elevenlabs", Message: err.Error(), Transient: true}
	}
	return audio, nil
}

// SupportedLanguages lists language codes covered by the multilingual models.
func (s *ElevenLabsService) SupportedLanguages() []string {
	return []string{
		"en", "es", "fr", "de", "it", "pt", "pl", "nl",
		"hi", "ja", "zh", "ko", "ar", "ru", "tr", "sv",
		"id", "fil", "uk", "cs", "el", "fi", "hr", "ms",
		"ro", "sk", "bg", "bn", "ta", "te",
	}
}
