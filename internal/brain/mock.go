package brain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/tools"
)

// MockAdapter is a deterministic stand-in for the hosted model. It keys off
// simple phrases in the current utterance so the full turn pipeline,
// including tool dispatch, can run without network credentials.
type MockAdapter struct {
	dispatcher Dispatcher
}

func NewMockAdapter(dispatcher Dispatcher) *MockAdapter {
	return &MockAdapter{dispatcher: dispatcher}
}

func (a *MockAdapter) Respond(ctx context.Context, req Request) (Response, error) {
	lower := strings.ToLower(req.InputText)

	if strings.Contains(lower, "cab") || strings.Contains(lower, "taxi") {
		args := cabArgs(req.InputText)
		result := a.dispatch(ctx, tools.ToolCabBooking, args)
		return Response{FinalText: result, ToolName: tools.ToolCabBooking, ToolResult: result}, nil
	}

	if strings.Contains(lower, "weather") {
		location := trailingPhrase(req.InputText, "in")
		if location == "" {
			location = "Delhi"
		}
		result := a.dispatch(ctx, tools.ToolWeather, map[string]any{"location": location})
		return Response{FinalText: result, ToolName: tools.ToolWeather, ToolResult: result}, nil
	}

	if strings.Contains(lower, "news") || strings.Contains(lower, "headlines") {
		args := map[string]any{}
		if location := trailingPhrase(req.InputText, "in"); location != "" {
			args["location"] = location
		}
		result := a.dispatch(ctx, tools.ToolNews, args)
		return Response{FinalText: result, ToolName: tools.ToolNews, ToolResult: result}, nil
	}

	if name := recalledName(req.Messages); name != "" && strings.Contains(lower, "my name") {
		return Response{FinalText: fmt.Sprintf("Your name is %s.", name)}, nil
	}

	return Response{FinalText: fmt.Sprintf("I heard you say: %s", req.InputText)}, nil
}

func (a *MockAdapter) dispatch(ctx context.Context, tool string, args map[string]any) string {
	raw, err := json.Marshal(args)
	if err != nil {
		raw = []byte("{}")
	}
	return a.dispatcher.Dispatch(ctx, tool, string(raw))
}

// cabArgs pulls pickup and dropoff out of a "from X to Y" phrasing, falling
// back to home and office when the utterance is vaguer than that.
func cabArgs(text string) map[string]any {
	pickup, dropoff := "home", "office"
	lower := strings.ToLower(text)
	if from := strings.Index(lower, "from "); from >= 0 {
		rest := text[from+len("from "):]
		if to := strings.Index(strings.ToLower(rest), " to "); to >= 0 {
			pickup = strings.TrimSpace(rest[:to])
			dropoff = trimSentence(rest[to+len(" to "):])
		} else {
			pickup = trimSentence(rest)
		}
	}
	return map[string]any{
		"pickup_location":  pickup,
		"dropoff_location": dropoff,
		"platform":         "uber",
	}
}

// trailingPhrase returns the words after the last occurrence of the given
// lowercase marker word, or "" when the marker is absent.
func trailingPhrase(text, marker string) string {
	lower := strings.ToLower(text)
	idx := strings.LastIndex(lower, " "+marker+" ")
	if idx < 0 {
		return ""
	}
	return trimSentence(text[idx+len(marker)+2:])
}

func trimSentence(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), ".!?")
}

func recalledName(messages []memory.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		lower := strings.ToLower(messages[i].Content)
		idx := strings.Index(lower, "my name is ")
		if idx < 0 {
			continue
		}
		rest := strings.Fields(messages[i].Content[idx+len("my name is "):])
		if len(rest) == 0 {
			continue
		}
		return strings.TrimRight(rest[0], ".!?,")
	}
	return ""
}
