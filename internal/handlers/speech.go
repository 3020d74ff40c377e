package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"vocalis-backend/internal/models"
	"vocalis-backend/internal/services"
)

// maxAudioUploadBytes caps in-memory multipart parsing (32 MiB).
const maxAudioUploadBytes = 32 << 20

type synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID, model string) ([]byte, error)
}

type SpeechHandler struct {
	transcriber     services.Transcriber
	synthesizer     synthesizer
	defaultVoiceID  string
	defaultTTSModel string
}

func NewSpeechHandler(transcriber services.Transcriber, synthesizer synthesizer, defaultVoiceID, defaultTTSModel string) *SpeechHandler {
	return &SpeechHandler{
		transcriber:     transcriber,
		synthesizer:     synthesizer,
		defaultVoiceID:  defaultVoiceID,
		defaultTTSModel: defaultTTSModel,
	}
}

func (h *SpeechHandler) SpeechToText(w http.ResponseWriter, r *http.Request) {
	audio, mimeType, filename, ok := readAudioUpload(w, r)
	if !ok {
		return
	}

	text, err := h.transcriber.Transcribe(r.Context(), audio, mimeType, filename)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SpeechToTextResponse{Text: text})
}

func (h *SpeechHandler) TextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req models.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	voiceID := req.VoiceID
	if voiceID == "" {
		voiceID = h.defaultVoiceID
	}
	model := req.Model
	if model == "" {
		model = h.defaultTTSModel
	}

	audio, err := h.synthesizer.Synthesize(r.Context(), req.Text, voiceID, model)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

// readAudioUpload extracts the "audio_file" multipart part. It writes the
// error response itself and reports ok=false when the upload is unusable.
func readAudioUpload(w http.ResponseWriter, r *http.Request) (audio []byte, mimeType, filename string, ok bool) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart form", r))
		return nil, "", "", false
	}

	file, header, err := r.FormFile("audio_file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Missing 'audio_file' upload", r))
		return nil, "", "", false
	}
	defer file.Close()

	audio, err = io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Failed to read audio upload", r))
		return nil, "", "", false
	}
	if len(audio) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Empty audio file", r))
		return nil, "", "", false
	}

	log.Printf("received audio upload name=%s content_type=%s size=%d",
		header.Filename, header.Header.Get("Content-Type"), len(audio))

	return audio, header.Header.Get("Content-Type"), header.Filename, true
}
