package brain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/tools"
)

// Request carries everything the reasoner needs for one turn: the persona
// prompt, the memory-derived message sequence ending in the current
// utterance, and the current utterance itself.
type Request struct {
	TurnID       string
	SystemPrompt string
	Messages     []memory.Message
	InputText    string
}

// Response is the reasoner's resolved output. FinalText is never empty on a
// nil error unless the model truly said nothing, in which case it is the
// empty string, not a nil placeholder. When a tool was invoked, ToolName and
// ToolResult record the resolved round trip.
type Response struct {
	FinalText  string
	ToolName   string
	ToolResult string
}

// Dispatcher resolves a reasoner-requested tool invocation into a result
// string. Implementations never fail: internal errors become the string.
type Dispatcher interface {
	Dispatch(ctx context.Context, name, rawArgs string) string
	ListTools() []tools.Tool
}

// Adapter produces the assistant's reply for one turn, resolving at most
// one tool invocation before answering.
type Adapter interface {
	Respond(ctx context.Context, req Request) (Response, error)
}

// Config controls adapter construction.
type Config struct {
	Mode   string
	APIKey string
	Model  string
}

func NewAdapter(cfg Config, dispatcher Dispatcher) (Adapter, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewOpenAIAdapter(cfg.APIKey, cfg.Model, dispatcher), nil
		}
		return NewMockAdapter(dispatcher), nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, errors.New("OPENAI_API_KEY is required for openai brain mode")
		}
		return NewOpenAIAdapter(cfg.APIKey, cfg.Model, dispatcher), nil
	case "mock":
		return NewMockAdapter(dispatcher), nil
	default:
		return nil, fmt.Errorf("unsupported brain mode %q", cfg.Mode)
	}
}
