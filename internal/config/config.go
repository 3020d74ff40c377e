package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// LLM (Groq by default, Gemini optional)
	LLMProvider       string
	GroqAPIKey        string
	GroqBaseURL       string
	GeminiAPIKey      string
	LLMModels         []string // ordered fallback list, first entry preferred
	LLMSystemPrompt   string
	LLMForceLanguage  string
	LLMTimeoutSeconds int

	// Weather
	WeatherEnabled       bool
	WeatherTriggerPrefix string

	// ElevenLabs speech
	ElevenLabsAPIKey   string
	ElevenLabsSTTModel string
	ElevenLabsTTSModel string
	ElevenLabsVoiceID  string
	STTProvider        string

	// Frontend
	FrontendURL string
}

const defaultSystemPrompt = "You are a helpful, friendly AI assistant. Be concise, clear, and proactive. " +
	"If weather data is provided, present it conversationally. Avoid repetition."

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		LLMProvider:       getEnvOrDefault("LLM_PROVIDER", "groq"),
		GroqBaseURL:       getEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMModels:         splitModels(getEnvOrDefault("LLM_MODELS", "llama-3.3-70b-versatile,llama-3.1-8b-instant")),
		LLMSystemPrompt:   getEnvOrDefault("LLM_SYSTEM_PROMPT", defaultSystemPrompt),
		LLMForceLanguage:  getEnvOrDefault("LLM_FORCE_LANGUAGE", ""),
		LLMTimeoutSeconds: getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 60),

		WeatherEnabled: getEnvAsBoolOrDefault("WEATHER_ENABLED", true),
		// The trigger grammar is provider/prompt dependent, so it stays configurable.
		// The system prompt instructs the model to emit "[[WEATHER: <location>]]"
		// when it needs live data.
		WeatherTriggerPrefix: getEnvOrDefault("WEATHER_TRIGGER_PREFIX", "[[WEATHER:"),

		ElevenLabsAPIKey:   getEnvOrDefault("ELEVENLABS_API_KEY", ""),
		ElevenLabsSTTModel: getEnvOrDefault("ELEVENLABS_STT_MODEL", "scribe_v1"),
		ElevenLabsTTSModel: getEnvOrDefault("ELEVENLABS_TTS_MODEL", "eleven_multilingual_v2"),
		ElevenLabsVoiceID:  getEnvOrDefault("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		STTProvider:        getEnvOrDefault("STT_PROVIDER", "elevenlabs"),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	// Only the active provider's key is required.
	switch cfg.LLMProvider {
	case "groq":
		cfg.GroqAPIKey = mustGetEnv("GROQ_API_KEY")
	case "gemini":
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	default:
		panic(fmt.Sprintf("unknown LLM_PROVIDER %q (expected groq or gemini)", cfg.LLMProvider))
	}

	if len(cfg.LLMModels) == 0 {
		panic("LLM_MODELS must list at least one model")
	}

	return cfg
}

// splitModels parses the comma-separated fallback list, preserving order.
func splitModels(raw string) []string {
	var models []string
	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
