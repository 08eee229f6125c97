package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/antoniostano/shakti/internal/voice"
)

// Stage sub-endpoints expose each adapter individually for debugging. The
// turn pipeline calls the adapters directly, not through these routes.

func (s *Server) handleSTT(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxAudioBytes+1<<20)
	if err := r.ParseMultipartForm(s.cfg.MaxAudioBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Content-Type must be multipart/form-data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxAudioBytes))
	if err != nil || len(audio) == 0 {
		respondError(w, http.StatusBadRequest, "File is required")
		return
	}

	transcript, err := s.transcriber.Transcribe(r.Context(), audio, header.Filename)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"transcript":    transcript.Text,
		"language_code": transcript.LanguageCode,
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Input              string `json:"input"`
		TargetLanguageCode string `json:"target_language_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Input) == "" || strings.TrimSpace(req.TargetLanguageCode) == "" {
		respondError(w, http.StatusBadRequest, "input and target_language_code are required for translation")
		return
	}

	translated, err := s.translator.Translate(r.Context(), req.Input, req.TargetLanguageCode)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"translated_text": translated})
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text               string  `json:"text"`
		TargetLanguageCode string  `json:"target_language_code"`
		Speaker            string  `json:"speaker"`
		Model              string  `json:"model"`
		Pitch              float64 `json:"pitch"`
		Speed              float64 `json:"speed"`
		Normalization      bool    `json:"normalization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLanguageCode) == "" {
		respondError(w, http.StatusBadRequest, "Both text and target_language_code are required.")
		return
	}

	if req.Speaker == "" {
		req.Speaker = s.cfg.TTSSpeaker
	}
	if req.Model == "" {
		req.Model = s.cfg.TTSModel
	}
	if req.Speed <= 0 {
		req.Speed = s.cfg.TTSSpeed
	}

	audioContent, err := s.synthesizer.Synthesize(r.Context(), voice.SynthesisRequest{
		Text:          voice.SanitizeForSynthesis(req.Text, req.TargetLanguageCode),
		LanguageCode:  req.TargetLanguageCode,
		Speaker:       req.Speaker,
		Model:         req.Model,
		Pitch:         req.Pitch,
		Speed:         req.Speed,
		Normalization: req.Normalization,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"audios": []string{audioContent}})
}
