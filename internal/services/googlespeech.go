package services

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// GoogleSpeechService is the alternative transcription backend, selected with
// STT_PROVIDER=google. Authentication uses Application Default Credentials.
type GoogleSpeechService struct {
	client *speech.Client
}

func NewGoogleSpeechService(ctx context.Context) (*GoogleSpeechService, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleSpeechService{client: client}, nil
}

func (s *GoogleSpeechService) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// Transcribe runs synchronous recognition over the uploaded audio.
func (s *GoogleSpeechService) Transcribe(ctx context.Context, audio []byte, mimeType, filename string) (string, error) {
	if len(audio) == 0 {
		return "", &ValidationError{Fields: map[string]string{"audio_file": "Empty audio file"}}
	}

	resp, err := s.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:     encodingForMIME(mimeType),
			LanguageCode: "en-US",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: "google-speech", Message: err.Error(), Transient: true}
	}

	var parts []string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", &ProviderError{Provider: "google-speech", Message: "no transcription returned"}
	}
	return text, nil
}

func encodingForMIME(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	switch {
	case strings.Contains(mimeType, "ogg"), strings.Contains(mimeType, "opus"), strings.Contains(mimeType, "webm"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(mimeType, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(mimeType, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
