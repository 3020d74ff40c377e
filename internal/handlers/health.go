package handlers

import (
	"net/http"
	"time"

	"vocalis-backend/internal/models"
	"vocalis-backend/internal/system"
)

type HealthHandler struct {
	startTime   time.Time
	llmProvider string
	llmModels   []string
	sttProvider string
	languages   []string
}

func NewHealthHandler(llmProvider string, llmModels []string, sttProvider string, languages []string) *HealthHandler {
	return &HealthHandler{
		startTime:   time.Now(),
		llmProvider: llmProvider,
		llmModels:   llmModels,
		sttProvider: sttProvider,
		languages:   languages,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	// Host metrics are best effort; a probe failure never fails the check.
	cpuPercent, _ := system.GetCPUUsage()
	memPercent, _ := system.GetMemoryUsage()

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:        "healthy",
		Message:       "All systems operational",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CPUPercent:    cpuPercent,
		MemoryPercent: memPercent,
	})
}

func (h *HealthHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.InfoResponse{
		Name:    "Voice-Enabled Chatbot API",
		Version: "1.0.0",
		Features: map[string]interface{}{
			"llm": map[string]interface{}{
				"provider":         h.llmProvider,
				"available_models": h.llmModels,
			},
			"speech_to_text": map[string]interface{}{
				"provider":            h.sttProvider,
				"supported_languages": h.languages,
			},
			"weather": map[string]interface{}{
				"provider": "Open-Meteo",
				"features": []string{"current weather", "geocoding"},
			},
		},
		Endpoints: map[string]string{
			"/api/speech-to-text": "Convert audio to text",
			"/api/text-to-speech": "Convert text to audio",
			"/api/chat":           "Chat with AI assistant",
			"/api/weather":        "Get weather information",
			"/api/voice-chat":     "Complete voice chat flow",
			"/api/assist":         "Unified text or audio input pipeline",
			"/api/translate":      "Translate text between English and Japanese",
		},
	})
}
