package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newElevenLabsTest(serverURL string) *ElevenLabsService {
	svc := NewElevenLabsService("test-key", "scribe_v1")
	svc.baseURL = serverURL
	return svc
}

func TestElevenLabsTranscribe(t *testing.T) {
	var gotAPIKey, gotModelID, gotFilename, gotPartType string
	var gotAudio []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speech-to-text" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		gotAPIKey = r.Header.Get("xi-api-key")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
			return
		}
		gotModelID = r.FormValue("model_id")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("Expected multipart field 'file': %v", err)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotPartType = header.Header.Get("Content-Type")
		gotAudio, _ = io.ReadAll(file)

		fmt.Fprint(w, `{"text":"hello world"}`)
	}))
	defer server.Close()

	svc := newElevenLabsTest(server.URL)
	text, err := svc.Transcribe(context.Background(), []byte("fake-audio"), "audio/webm", "clip.webm")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}

	if text != "hello world" {
		t.Errorf("Expected 'hello world', got %q", text)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("Expected xi-api-key header, got %q", gotAPIKey)
	}
	if gotModelID != "scribe_v1" {
		t.Errorf("Expected model_id 'scribe_v1', got %q", gotModelID)
	}
	if gotFilename != "clip.webm" {
		t.Errorf("Expected filename 'clip.webm', got %q", gotFilename)
	}
	if gotPartType != "audio/webm" {
		t.Errorf("Expected part Content-Type 'audio/webm', got %q", gotPartType)
	}
	if !bytes.Equal(gotAudio, []byte("fake-audio")) {
		t.Errorf("Audio payload mismatch: %q", gotAudio)
	}
}

func TestElevenLabsTranscribe_TranscriptionFieldFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"transcription":"fallback text"}`)
	}))
	defer server.Close()

	svc := newElevenLabsTest(server.URL)
	text, err := svc.Transcribe(context.Background(), []byte("audio"), "", "")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "fallback text" {
		t.Errorf("Expected transcription field fallback, got %q", text)
	}
}

func TestElevenLabsTranscribe_Errors(t *testing.T) {
	t.Run("empty audio", func(t *testing.T) {
		svc := newElevenLabsTest("http://unused")
		_, err := svc.Transcribe(context.Background(), nil, "", "")

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected ValidationError, got %v", err)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"detail":"invalid audio"}`)
		}))
		defer server.Close()

		svc := newElevenLabsTest(server.URL)
		_, err := svc.Transcribe(context.Background(), []byte("audio"), "", "")

		var providerErr *ProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("Expected ProviderError, got %v", err)
		}
		if providerErr.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d", providerErr.StatusCode)
		}
		if providerErr.Transient {
			t.Error("Expected 422 to be permanent")
		}
	})

	t.Run("no text in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{}`)
		}))
		defer server.Close()

		svc := newElevenLabsTest(server.URL)
		_, err := svc.Transcribe(context.Background(), []byte("audio"), "", "")

		var providerErr *ProviderError
		if !errors.As(err, &providerErr) {
			t.Fatalf("Expected ProviderError, got %v", err)
		}
	})
}

func TestElevenLabsSynthesize(t *testing.T) {
	wantAudio := []byte("mp3-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text-to-speech/voice-123" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "audio/mpeg" {
			t.Errorf("Expected Accept audio/mpeg, got %q", accept)
		}

		body, _ := io.ReadAll(r.Body)
		if !bytes.Contains(body, []byte(`"model_id":"eleven_multilingual_v2"`)) {
			t.Errorf("Expected model_id in body, got %s", body)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(wantAudio)
	}))
	defer server.Close()

	svc := newElevenLabsTest(server.URL)
	audio, err := svc.Synthesize(context.Background(), "Hello", "voice-123", "eleven_multilingual_v2")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !bytes.Equal(audio, wantAudio) {
		t.Errorf("Audio mismatch: got %q", audio)
	}
}

func TestElevenLabsSynthesize_EmptyText(t *testing.T) {
	svc := newElevenLabsTest("http://unused")
	_, err := svc.Synthesize(context.Background(), "   ", "voice-123", "model")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestSupportedLanguages(t *testing.T) {
	svc := NewElevenLabsService("key", "scribe_v1")
	langs := svc.SupportedLanguages()

	if len(langs) != 30 {
		t.Errorf("Expected 30 language codes, got %d", len(langs))
	}
	seen := make(map[string]bool, len(langs))
	for _, code := range langs {
		if seen[code] {
			t.Errorf("Duplicate language code %q", code)
		}
		seen[code] = true
	}
	for _, want := range []string{"en", "ja"} {
		if !seen[want] {
			t.Errorf("Expected %q in supported languages", want)
		}
	}
}
