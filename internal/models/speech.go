package models

// SpeechToTextResponse carries a transcription result.
type SpeechToTextResponse struct {
	Text string `json:"text"`
}

// SynthesizeRequest asks for text-to-speech audio.
type SynthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"` // defaults to the configured voice
	Model   string `json:"model,omitempty"`    // defaults to the configured TTS model
}
