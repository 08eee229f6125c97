package protocol

import "fmt"

// Stage identifies one step of the turn pipeline.
type Stage string

const (
	StageInput       Stage = "input"
	StageSTT         Stage = "stt"
	StageReasoning   Stage = "ai"
	StageTranslation Stage = "translation"
	StageSynthesis   Stage = "tts"
)

// TurnResponse is the successful caller-facing result of one turn.
type TurnResponse struct {
	AudioContent string   `json:"audioContent"`
	LanguageCode string   `json:"language_code"`
	Memory       []string `json:"memory"`
}

// StageError names the pipeline stage that failed and carries the raw
// downstream diagnostic payload for the caller-facing error body.
type StageError struct {
	Stage     Stage
	Message   string
	Status    int
	Retryable bool
	Detail    any
	// Memory as it stood when the stage failed. The assistant entry may
	// already be present when translation or synthesis fails; the caller
	// decides whether to resubmit it.
	Memory []string
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %s", e.Stage, e.Message)
}

// NewStageError builds a caller-facing stage failure.
func NewStageError(stage Stage, message string, status int, detail any) *StageError {
	return &StageError{Stage: stage, Message: message, Status: status, Detail: detail}
}

// Body renders the JSON error body: {"error": message, "<stage>Data": detail}.
func (e *StageError) Body() map[string]any {
	body := map[string]any{"error": e.Message}
	if e.Detail != nil {
		if key := detailKey(e.Stage); key != "" {
			body[key] = e.Detail
		}
	}
	if e.Memory != nil {
		body["memory"] = e.Memory
	}
	return body
}

func detailKey(stage Stage) string {
	switch stage {
	case StageSTT:
		return "sttData"
	case StageReasoning:
		return "aiData"
	case StageTranslation:
		return "translateData"
	case StageSynthesis:
		return "ttsData"
	default:
		return ""
	}
}
