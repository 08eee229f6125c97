package memory

import (
	"context"
	"time"
)

// TurnRecord is one archived entry of a completed turn. The archive is an
// audit trail only: the orchestrator writes it best-effort and never reads
// it back into a call, so conversational context stays client-threaded.
type TurnRecord struct {
	ID           string    `json:"id"`
	TurnID       string    `json:"turn_id"`
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	LanguageCode string    `json:"language_code"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists and lists archived turn entries.
type Store interface {
	SaveTurn(ctx context.Context, record TurnRecord) error
	RecentTurns(ctx context.Context, limit int) ([]TurnRecord, error)
	Close() error
}
