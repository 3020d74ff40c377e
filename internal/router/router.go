package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"vocalis-backend/internal/handlers"
	"vocalis-backend/internal/middleware"
)

func New(
	healthHandler *handlers.HealthHandler,
	chatHandler *handlers.ChatHandler,
	weatherHandler *handlers.WeatherHandler,
	speechHandler *handlers.SpeechHandler,
	assistHandler *handlers.AssistHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/", healthHandler.Health)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/info", healthHandler.Info)

		r.Post("/chat", chatHandler.Chat)
		r.Post("/translate", chatHandler.Translate)

		r.Get("/weather", weatherHandler.GetWeather)

		r.Post("/speech-to-text", speechHandler.SpeechToText)
		r.Post("/text-to-speech", speechHandler.TextToSpeech)

		r.Post("/voice-chat", assistHandler.VoiceChat)
		r.Post("/assist", assistHandler.Assist)
	})

	return r
}
