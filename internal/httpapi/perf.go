package httpapi

import (
	"net/http"

	"github.com/antoniostano/shakti/internal/observability"
)

// handlePerfLatency serves rolling per-stage latency percentiles for recent
// turns. SnapshotTurnStages tolerates a nil metrics handle, so a service
// running without instrumentation still answers with an empty window.
func (s *Server) handlePerfLatency(w http.ResponseWriter, _ *http.Request) {
	snap := s.metrics.SnapshotTurnStages()
	if snap.Stages == nil {
		snap.Stages = []observability.TurnStageStats{}
	}
	respondJSON(w, http.StatusOK, snap)
}
