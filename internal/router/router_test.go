package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vocalis-backend/internal/handlers"
	"vocalis-backend/internal/models"
)

type routeStub struct{}

func (routeStub) Respond(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	return &models.ChatResponse{Reply: "ok", ModelUsed: "stub"}, nil
}

func (routeStub) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return "ok", nil
}

func (routeStub) Lookup(ctx context.Context, location string) (*models.WeatherResponse, error) {
	return &models.WeatherResponse{Location: location}, nil
}

func (routeStub) Transcribe(ctx context.Context, audio []byte, mimeType, filename string) (string, error) {
	return "ok", nil
}

func (routeStub) Synthesize(ctx context.Context, text, voiceID, model string) ([]byte, error) {
	return []byte("audio"), nil
}

func newTestRouter() http.Handler {
	stub := routeStub{}
	return New(
		handlers.NewHealthHandler("groq", []string{"model-a"}, "elevenlabs", []string{"en"}),
		handlers.NewChatHandler(stub),
		handlers.NewWeatherHandler(stub),
		handlers.NewSpeechHandler(stub, stub, "voice", "model"),
		handlers.NewAssistHandler(stub, stub),
		"http://localhost:3000",
	)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/info", "", http.StatusOK},
		{http.MethodPost, "/api/chat", `{"message":"Hi"}`, http.StatusOK},
		{http.MethodPost, "/api/translate", `{"text":"Hi","target_lang":"ja"}`, http.StatusOK},
		{http.MethodGet, "/api/weather?location=Paris", "", http.StatusOK},
		{http.MethodGet, "/api/chat", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/nope", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}

			req := httptest.NewRequest(tc.method, tc.path, body)
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouterMiddleware(t *testing.T) {
	router := newTestRouter()

	t.Run("request ID assigned", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID on response")
		}
	})

	t.Run("preflight handled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204 for preflight, got %d", w.Code)
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
			t.Errorf("Expected CORS origin header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
		}
	})
}
