package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/antoniostano/shakti/internal/reliability"
)

// ProviderError carries the provider's HTTP status and raw body so the
// orchestrator can embed the downstream diagnostic in the stage error.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

func (e *ProviderError) Retryable() bool {
	return reliability.IsRetryableHTTPStatus(e.Status)
}

type SarvamConfig struct {
	APIKey  string
	BaseURL string
}

// SarvamProvider implements the speech stack against the Sarvam AI REST API:
// speech-to-text-translate for transcription, translate for localization,
// text-to-speech for synthesis. All three share one API key header.
type SarvamProvider struct {
	cfg    SarvamConfig
	client *http.Client
}

func NewSarvamProvider(cfg SarvamConfig) *SarvamProvider {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.sarvam.ai"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &SarvamProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *SarvamProvider) Transcribe(ctx context.Context, audio []byte, filename string) (Transcript, error) {
	if filename == "" {
		filename = "clip.wav"
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return Transcript{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return Transcript{}, fmt.Errorf("build multipart body: %w", err)
	}
	if err := form.Close(); err != nil {
		return Transcript{}, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/speech-to-text-translate", &body)
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("api-subscription-key", p.cfg.APIKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out struct {
		Transcript   string `json:"transcript"`
		LanguageCode string `json:"language_code"`
	}
	if err := p.do(req, "sarvam stt", &out); err != nil {
		return Transcript{}, err
	}
	return Transcript{Text: out.Transcript, LanguageCode: out.LanguageCode}, nil
}

func (p *SarvamProvider) Translate(ctx context.Context, text, targetLanguageCode string) (string, error) {
	payload := map[string]any{
		"input":                text,
		"source_language_code": "auto",
		"target_language_code": targetLanguageCode,
		"output_script":        "fully-native",
	}

	req, err := p.jsonRequest(ctx, "/translate", payload)
	if err != nil {
		return "", err
	}

	var out struct {
		TranslatedText string `json:"translated_text"`
	}
	if err := p.do(req, "sarvam translate", &out); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}

func (p *SarvamProvider) Synthesize(ctx context.Context, r SynthesisRequest) (string, error) {
	payload := map[string]any{
		"text":                 r.Text,
		"target_language_code": r.LanguageCode,
		"speaker":              r.Speaker,
		"model":                r.Model,
		"pitch":                r.Pitch,
		"speed":                r.Speed,
		"normalization":        r.Normalization,
	}

	req, err := p.jsonRequest(ctx, "/text-to-speech", payload)
	if err != nil {
		return "", err
	}

	var out struct {
		Audios []string `json:"audios"`
	}
	if err := p.do(req, "sarvam tts", &out); err != nil {
		return "", err
	}
	if len(out.Audios) == 0 {
		return "", fmt.Errorf("sarvam tts returned no audio")
	}
	return out.Audios[0], nil
}

func (p *SarvamProvider) jsonRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-subscription-key", p.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (p *SarvamProvider) do(req *http.Request, provider string, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("%s read response: %w", provider, err)
	}
	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Provider: provider, Status: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s decode response: %w", provider, err)
	}
	return nil
}
