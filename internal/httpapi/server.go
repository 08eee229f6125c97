package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/antoniostano/shakti/internal/config"
	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/observability"
	"github.com/antoniostano/shakti/internal/protocol"
	"github.com/antoniostano/shakti/internal/voice"
)

// TurnRunner drives one full pipeline turn.
type TurnRunner interface {
	RunTurn(ctx context.Context, req voice.TurnRequest) (protocol.TurnResponse, *protocol.StageError)
}

type Server struct {
	cfg         config.Config
	runner      TurnRunner
	transcriber voice.Transcriber
	translator  voice.Translator
	synthesizer voice.Synthesizer
	archive     memory.Store
	metrics     *observability.Metrics
}

func New(
	cfg config.Config,
	runner TurnRunner,
	transcriber voice.Transcriber,
	translator voice.Translator,
	synthesizer voice.Synthesizer,
	archive memory.Store,
	metrics *observability.Metrics,
) *Server {
	return &Server{
		cfg:         cfg,
		runner:      runner,
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,
		archive:     archive,
		metrics:     metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})
	r.Get("/v1/perf/latency", s.handlePerfLatency)

	r.Post("/v1/turn", s.handleTurn)
	r.Get("/v1/turns/recent", s.handleRecentTurns)

	r.Post("/v1/stt", s.handleSTT)
	r.Post("/v1/translate", s.handleTranslate)
	r.Post("/v1/tts", s.handleTTS)

	r.Post("/v1/mock/cab-booking", s.handleMockCabBooking)
	r.Post("/v1/mock/grocery-medicine-ordering", s.handleMockGroceryOrdering)
	r.Post("/v1/mock/doctor-lab-appointment", s.handleMockAppointment)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"error": message})
}
