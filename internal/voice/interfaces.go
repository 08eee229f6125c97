package voice

import "context"

// Transcript is the transcription adapter's output: the recognized text and
// the language the provider detected in the clip.
type Transcript struct {
	Text         string
	LanguageCode string
}

// Transcriber turns one finished audio clip into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (Transcript, error)
}

// Translator converts finalized reply text into the working language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguageCode string) (string, error)
}

// SynthesisRequest carries the text-to-speech parameters. Everything past
// Text and LanguageCode has a provider-side default.
type SynthesisRequest struct {
	Text          string
	LanguageCode  string
	Speaker       string
	Model         string
	Pitch         float64
	Speed         float64
	Normalization bool
}

// Synthesizer converts localized text into base64-encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

// Provider bundles the three speech-stack adapters one backend implements.
type Provider interface {
	Transcriber
	Translator
	Synthesizer
}
