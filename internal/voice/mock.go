package voice

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/antoniostano/shakti/internal/audio"
)

// MockProvider is a local stand-in speech stack: a canned transcript, an
// identity translator, and a generated tone for audio. It lets the whole
// turn pipeline run without provider credentials.
type MockProvider struct {
	// TranscriptText is what every clip "transcribes" to.
	TranscriptText string
	// LanguageCode is the detected language reported with the transcript.
	LanguageCode string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		TranscriptText: "simulated voice input",
		LanguageCode:   "en-IN",
	}
}

func (p *MockProvider) Transcribe(_ context.Context, audioBytes []byte, _ string) (Transcript, error) {
	if len(audioBytes) == 0 {
		return Transcript{}, nil
	}
	return Transcript{Text: p.TranscriptText, LanguageCode: p.LanguageCode}, nil
}

func (p *MockProvider) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}

func (p *MockProvider) Synthesize(_ context.Context, req SynthesisRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}
	// Tone length tracks text length so longer replies take audibly longer.
	duration := 0.25 + float64(len(req.Text))/200.0
	if duration > 3 {
		duration = 3
	}
	wav, err := audio.SineToneWAV(440, duration, 16000)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(wav), nil
}
