package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/voice"
)

// handleTurn accepts one multipart turn submission: a required audio clip,
// an optional caller-declared language code, and the optional prior memory.
func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxAudioBytes+1<<20)

	if err := r.ParseMultipartForm(s.cfg.MaxAudioBytes); err != nil {
		respondError(w, http.StatusBadRequest, "missing file")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxAudioBytes))
	if err != nil || len(audio) == 0 {
		respondError(w, http.StatusBadRequest, "missing file")
		return
	}

	req := voice.TurnRequest{
		Audio:        audio,
		Filename:     header.Filename,
		LanguageCode: r.FormValue("language_code"),
		// Malformed memory restarts context rather than failing the turn.
		Memory: memory.Parse(r.FormValue("memory")),
	}

	resp, stageErr := s.runner.RunTurn(r.Context(), req)
	if stageErr != nil {
		respondJSON(w, stageErr.Status, stageErr.Body())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleRecentTurns lists archived turn entries, newest last.
func (s *Server) handleRecentTurns(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondJSON(w, http.StatusOK, map[string]any{"turns": []any{}})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > 100 {
			n = 100
		}
		limit = n
	}

	records, err := s.archive.RecentTurns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list turns")
		return
	}
	if records == nil {
		records = []memory.TurnRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"turns": records})
}
