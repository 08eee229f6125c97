package voice

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/antoniostano/shakti/internal/brain"
	"github.com/antoniostano/shakti/internal/memory"
	"github.com/antoniostano/shakti/internal/observability"
	"github.com/antoniostano/shakti/internal/persona"
	"github.com/antoniostano/shakti/internal/protocol"
)

const defaultLanguageCode = "en-IN"

// TurnRequest is one caller utterance plus the threaded conversation state.
type TurnRequest struct {
	Audio        []byte
	Filename     string
	LanguageCode string
	Memory       []string
}

// OrchestratorConfig carries the per-stage deadline and synthesis defaults.
type OrchestratorConfig struct {
	StageTimeout time.Duration
	TTSSpeaker   string
	TTSModel     string
	TTSPitch     float64
	TTSSpeed     float64
}

// Orchestrator sequences one turn through transcription, reasoning,
// translation, and synthesis. Each stage must produce its required output
// before the next runs; the first failure ends the turn with an error naming
// that stage.
type Orchestrator struct {
	transcriber Transcriber
	translator  Translator
	synthesizer Synthesizer
	reasoner    brain.Adapter
	persona     *persona.Loader
	archive     memory.Store
	metrics     *observability.Metrics
	cfg         OrchestratorConfig
}

func NewOrchestrator(
	transcriber Transcriber,
	translator Translator,
	synthesizer Synthesizer,
	reasoner brain.Adapter,
	personaLoader *persona.Loader,
	archive memory.Store,
	metrics *observability.Metrics,
	cfg OrchestratorConfig,
) *Orchestrator {
	if cfg.StageTimeout <= 0 {
		cfg.StageTimeout = 30 * time.Second
	}
	if cfg.TTSSpeaker == "" {
		cfg.TTSSpeaker = "anushka"
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = "bulbul:v2"
	}
	if cfg.TTSSpeed <= 0 {
		cfg.TTSSpeed = 1.0
	}
	return &Orchestrator{
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,
		reasoner:    reasoner,
		persona:     personaLoader,
		archive:     archive,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// RunTurn drives the full pipeline for one utterance. On success the
// response carries the synthesized audio, the working language, and the
// memory grown by exactly one user and one assistant entry. On failure the
// stage error names the failed stage and carries the memory as it stood.
func (o *Orchestrator) RunTurn(ctx context.Context, req TurnRequest) (protocol.TurnResponse, *protocol.StageError) {
	turnID := uuid.NewString()
	started := time.Now()

	o.metrics.ActiveTurns.Inc()
	defer o.metrics.ActiveTurns.Dec()

	resp, stageErr := o.runStages(ctx, turnID, req)

	o.metrics.ObserveStage("turn_total", time.Since(started))
	if stageErr != nil {
		o.metrics.TurnsTotal.WithLabelValues("error").Inc()
		o.metrics.StageErrors.WithLabelValues(string(stageErr.Stage)).Inc()
		log.Printf("turn %s failed at %s: %s", turnID, stageErr.Stage, stageErr.Message)
		return protocol.TurnResponse{}, stageErr
	}
	o.metrics.TurnsTotal.WithLabelValues("ok").Inc()
	return resp, nil
}

func (o *Orchestrator) runStages(ctx context.Context, turnID string, req TurnRequest) (protocol.TurnResponse, *protocol.StageError) {
	if len(req.Audio) == 0 {
		return protocol.TurnResponse{}, protocol.NewStageError(protocol.StageInput, "missing file", http.StatusBadRequest, nil)
	}

	mem := req.Memory

	transcript, stageErr := o.transcribe(ctx, req)
	if stageErr != nil {
		stageErr.Memory = mem
		return protocol.TurnResponse{}, stageErr
	}

	// Caller-declared language wins; otherwise the detected one sticks.
	lang := strings.TrimSpace(req.LanguageCode)
	if lang == "" {
		lang = strings.TrimSpace(transcript.LanguageCode)
	}
	if lang == "" {
		lang = defaultLanguageCode
	}

	mem = memory.AppendUser(mem, transcript.Text)

	finalText, toolName, stageErr := o.reason(ctx, turnID, mem, transcript.Text)
	if stageErr != nil {
		stageErr.Memory = mem
		return protocol.TurnResponse{}, stageErr
	}

	// Memory records what was said as soon as it is decided, even if a
	// later stage fails to deliver the audio.
	mem = memory.AppendAssistant(mem, finalText)

	translated, stageErr := o.translate(ctx, finalText, lang)
	if stageErr != nil {
		stageErr.Memory = mem
		return protocol.TurnResponse{}, stageErr
	}

	audioContent, stageErr := o.synthesize(ctx, translated, lang)
	if stageErr != nil {
		stageErr.Memory = mem
		return protocol.TurnResponse{}, stageErr
	}

	o.archiveTurn(turnID, transcript.Text, finalText, lang)
	if toolName != "" {
		o.metrics.ObserveIndicator("tool_dispatch")
	}

	return protocol.TurnResponse{
		AudioContent: audioContent,
		LanguageCode: lang,
		Memory:       mem,
	}, nil
}

func (o *Orchestrator) transcribe(ctx context.Context, req TurnRequest) (Transcript, *protocol.StageError) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
	defer cancel()

	started := time.Now()
	transcript, err := o.transcriber.Transcribe(ctx, req.Audio, req.Filename)
	o.metrics.ObserveStage(string(protocol.StageSTT), time.Since(started))

	if err != nil {
		return Transcript{}, stageFailure(protocol.StageSTT, "stt failed", err)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return Transcript{}, protocol.NewStageError(protocol.StageSTT, "stt failed", http.StatusInternalServerError, "transcript missing from provider response")
	}
	return transcript, nil
}

func (o *Orchestrator) reason(ctx context.Context, turnID string, mem []string, transcript string) (string, string, *protocol.StageError) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
	defer cancel()

	started := time.Now()
	resp, err := o.reasoner.Respond(ctx, brain.Request{
		TurnID:       turnID,
		SystemPrompt: o.persona.Prompt(),
		Messages:     memory.WithCurrentTurn(mem, transcript),
		InputText:    transcript,
	})
	o.metrics.ObserveStage(string(protocol.StageReasoning), time.Since(started))

	if err != nil {
		return "", "", stageFailure(protocol.StageReasoning, "ai failed", err)
	}
	if strings.TrimSpace(resp.FinalText) == "" {
		return "", "", protocol.NewStageError(protocol.StageReasoning, "ai failed", http.StatusInternalServerError, "reasoner returned no text")
	}
	return resp.FinalText, resp.ToolName, nil
}

func (o *Orchestrator) translate(ctx context.Context, text, lang string) (string, *protocol.StageError) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
	defer cancel()

	started := time.Now()
	translated, err := o.translator.Translate(ctx, text, lang)
	o.metrics.ObserveStage(string(protocol.StageTranslation), time.Since(started))

	if err != nil {
		return "", stageFailure(protocol.StageTranslation, "translation failed", err)
	}
	if strings.TrimSpace(translated) == "" {
		return "", protocol.NewStageError(protocol.StageTranslation, "translation failed", http.StatusInternalServerError, "translated_text missing from provider response")
	}
	return translated, nil
}

func (o *Orchestrator) synthesize(ctx context.Context, text, lang string) (string, *protocol.StageError) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
	defer cancel()

	speech := SanitizeForSynthesis(text, lang)
	if speech == "" {
		speech = text
	}

	started := time.Now()
	audioContent, err := o.synthesizer.Synthesize(ctx, SynthesisRequest{
		Text:         speech,
		LanguageCode: lang,
		Speaker:      o.cfg.TTSSpeaker,
		Model:        o.cfg.TTSModel,
		Pitch:        o.cfg.TTSPitch,
		Speed:        o.cfg.TTSSpeed,
	})
	o.metrics.ObserveStage(string(protocol.StageSynthesis), time.Since(started))

	if err != nil {
		return "", stageFailure(protocol.StageSynthesis, "tts failed", err)
	}
	if strings.TrimSpace(audioContent) == "" {
		return "", protocol.NewStageError(protocol.StageSynthesis, "tts failed", http.StatusInternalServerError, "audio missing from provider response")
	}
	return audioContent, nil
}

// archiveTurn saves the turn's two entries best-effort. The archive is an
// audit trail: failures are logged and never fail the turn.
func (o *Orchestrator) archiveTurn(turnID, userText, assistantText, lang string) {
	if o.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	now := time.Now().UTC()
	records := []memory.TurnRecord{
		{ID: uuid.NewString(), TurnID: turnID, Role: memory.RoleUser, Content: userText, LanguageCode: lang, CreatedAt: now},
		{ID: uuid.NewString(), TurnID: turnID, Role: memory.RoleAssistant, Content: assistantText, LanguageCode: lang, CreatedAt: now},
	}
	for _, rec := range records {
		if err := o.archive.SaveTurn(ctx, rec); err != nil {
			log.Printf("turn %s: archive write failed: %v", turnID, err)
			return
		}
	}
}

func stageFailure(stage protocol.Stage, message string, err error) *protocol.StageError {
	stageErr := protocol.NewStageError(stage, message, http.StatusInternalServerError, err.Error())
	var pe *ProviderError
	if errors.As(err, &pe) {
		stageErr.Detail = pe.Body
		stageErr.Retryable = pe.Retryable()
	}
	return stageErr
}
