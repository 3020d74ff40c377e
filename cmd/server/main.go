package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocalis-backend/internal/config"
	"vocalis-backend/internal/handlers"
	"vocalis-backend/internal/router"
	"vocalis-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Vocalis Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	callTimeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	// ──── Step 2: Initialize Completion Provider ────
	var completionProvider services.CompletionProvider
	switch cfg.LLMProvider {
	case "gemini":
		geminiClient, err := services.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiClient.Close()
		completionProvider = geminiClient
	default:
		completionProvider = services.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, callTimeout)
	}
	log.Printf("✓ Completion provider initialized (%s, models: %v)", completionProvider.Name(), cfg.LLMModels)

	// ──── Step 3: Initialize Services ────
	weatherService := services.NewWeatherService()
	elevenLabs := services.NewElevenLabsService(cfg.ElevenLabsAPIKey, cfg.ElevenLabsSTTModel)

	var transcriber services.Transcriber = elevenLabs
	if cfg.STTProvider == "google" {
		googleSpeech, err := services.NewGoogleSpeechService(context.Background())
		if err != nil {
			log.Fatalf("✗ Google Speech client initialization failed: %v", err)
		}
		defer googleSpeech.Close()
		transcriber = googleSpeech
	}
	log.Printf("✓ Speech services initialized (stt: %s)", cfg.STTProvider)

	chatService := services.NewChatService(
		completionProvider,
		weatherService,
		cfg.LLMModels,
		cfg.LLMSystemPrompt,
		cfg.LLMForceLanguage,
		cfg.WeatherEnabled,
		cfg.WeatherTriggerPrefix,
		callTimeout,
	)
	log.Println("✓ Chat orchestrator initialized")

	// ──── Step 4: Initialize Handlers ────
	healthHandler := handlers.NewHealthHandler(cfg.LLMProvider, cfg.LLMModels, cfg.STTProvider, elevenLabs.SupportedLanguages())
	chatHandler := handlers.NewChatHandler(chatService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	speechHandler := handlers.NewSpeechHandler(transcriber, elevenLabs, cfg.ElevenLabsVoiceID, cfg.ElevenLabsTTSModel)
	assistHandler := handlers.NewAssistHandler(chatService, transcriber)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(
		healthHandler,
		chatHandler,
		weatherHandler,
		speechHandler,
		assistHandler,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Vocalis Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
