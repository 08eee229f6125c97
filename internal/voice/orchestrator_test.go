package voice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/antoniostano/shakti/internal/brain"
	"github.com/antoniostano/shakti/internal/observability"
	"github.com/antoniostano/shakti/internal/persona"
	"github.com/antoniostano/shakti/internal/protocol"
	"github.com/antoniostano/shakti/internal/tools"
)

var testMetrics = observability.NewMetrics("shakti_voice_test")

type stubTranscriber struct {
	transcript Transcript
	err        error
	calls      int
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (Transcript, error) {
	s.calls++
	return s.transcript, s.err
}

type stubTranslator struct {
	out   string
	err   error
	calls int
	lang  string
}

func (s *stubTranslator) Translate(_ context.Context, text, lang string) (string, error) {
	s.calls++
	s.lang = lang
	if s.err != nil {
		return "", s.err
	}
	if s.out == "echo" {
		return text, nil
	}
	return s.out, nil
}

type stubSynthesizer struct {
	out   string
	err   error
	calls int
	text  string
}

func (s *stubSynthesizer) Synthesize(_ context.Context, req SynthesisRequest) (string, error) {
	s.calls++
	s.text = req.Text
	return s.out, s.err
}

type stubReasoner struct {
	resp brain.Response
	err  error
}

func (s *stubReasoner) Respond(_ context.Context, _ brain.Request) (brain.Response, error) {
	return s.resp, s.err
}

func newTestOrchestrator(t *stubTranscriber, tr *stubTranslator, s *stubSynthesizer, r brain.Adapter) *Orchestrator {
	return NewOrchestrator(t, tr, s, r, persona.NewLoader(""), nil, testMetrics, OrchestratorConfig{
		StageTimeout: 5 * time.Second,
	})
}

func TestRunTurnMissingFile(t *testing.T) {
	o := newTestOrchestrator(&stubTranscriber{}, &stubTranslator{}, &stubSynthesizer{}, &stubReasoner{})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{})
	if stageErr == nil {
		t.Fatal("RunTurn with no audio did not fail")
	}
	if stageErr.Message != "missing file" {
		t.Fatalf("message = %q, want %q", stageErr.Message, "missing file")
	}
	if stageErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", stageErr.Status, http.StatusBadRequest)
	}
}

func TestRunTurnSuccessGrowsMemoryByTwo(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "what is my name", LanguageCode: "en-IN"}}
	translator := &stubTranslator{out: "echo"}
	synth := &stubSynthesizer{out: "QUJD"}
	o := newTestOrchestrator(transcriber, translator, synth, &stubReasoner{resp: brain.Response{FinalText: "Your name is Priya."}})

	prior := []string{"User Response: my name is Priya", "Shakti AI Response: Nice to meet you."}
	resp, stageErr := o.RunTurn(context.Background(), TurnRequest{
		Audio:  []byte{1, 2, 3},
		Memory: prior,
	})
	if stageErr != nil {
		t.Fatalf("RunTurn failed: %v", stageErr)
	}

	if len(resp.Memory) != len(prior)+2 {
		t.Fatalf("memory length = %d, want %d", len(resp.Memory), len(prior)+2)
	}
	if resp.Memory[2] != "User Response: what is my name" {
		t.Fatalf("user entry = %q", resp.Memory[2])
	}
	if resp.Memory[3] != "Shakti AI Response: Your name is Priya." {
		t.Fatalf("assistant entry = %q", resp.Memory[3])
	}
	if resp.AudioContent != "QUJD" {
		t.Fatalf("audioContent = %q", resp.AudioContent)
	}
	if resp.LanguageCode != "en-IN" {
		t.Fatalf("language_code = %q, want en-IN", resp.LanguageCode)
	}
}

func TestRunTurnCallerLanguageOverridesDetected(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "hello", LanguageCode: "en-IN"}}
	translator := &stubTranslator{out: "नमस्ते"}
	synth := &stubSynthesizer{out: "QUJD"}
	o := newTestOrchestrator(transcriber, translator, synth, &stubReasoner{resp: brain.Response{FinalText: "Hello there."}})

	resp, stageErr := o.RunTurn(context.Background(), TurnRequest{
		Audio:        []byte{1},
		LanguageCode: "hi-IN",
	})
	if stageErr != nil {
		t.Fatalf("RunTurn failed: %v", stageErr)
	}
	if resp.LanguageCode != "hi-IN" {
		t.Fatalf("language_code = %q, want hi-IN", resp.LanguageCode)
	}
	if translator.lang != "hi-IN" {
		t.Fatalf("translator target = %q, want hi-IN", translator.lang)
	}
}

func TestRunTurnSTTFailureStopsPipeline(t *testing.T) {
	transcriber := &stubTranscriber{err: errors.New("boom")}
	translator := &stubTranslator{}
	synth := &stubSynthesizer{}
	o := newTestOrchestrator(transcriber, translator, synth, &stubReasoner{resp: brain.Response{FinalText: "x"}})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1}})
	if stageErr == nil {
		t.Fatal("RunTurn did not fail")
	}
	if stageErr.Stage != protocol.StageSTT {
		t.Fatalf("stage = %q, want %q", stageErr.Stage, protocol.StageSTT)
	}
	if stageErr.Message != "stt failed" {
		t.Fatalf("message = %q, want %q", stageErr.Message, "stt failed")
	}
	if translator.calls != 0 || synth.calls != 0 {
		t.Fatalf("later stages ran after stt failure: translate=%d synth=%d", translator.calls, synth.calls)
	}
}

func TestRunTurnEmptyTranscriptFails(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "  "}}
	o := newTestOrchestrator(transcriber, &stubTranslator{}, &stubSynthesizer{}, &stubReasoner{})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1}})
	if stageErr == nil || stageErr.Message != "stt failed" {
		t.Fatalf("stageErr = %v, want stt failed", stageErr)
	}
}

func TestRunTurnEmptyReasonerTextFails(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "hello", LanguageCode: "en-IN"}}
	translator := &stubTranslator{}
	o := newTestOrchestrator(transcriber, translator, &stubSynthesizer{}, &stubReasoner{resp: brain.Response{FinalText: ""}})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1}})
	if stageErr == nil {
		t.Fatal("RunTurn did not fail")
	}
	if stageErr.Message != "ai failed" {
		t.Fatalf("message = %q, want %q", stageErr.Message, "ai failed")
	}
	if translator.calls != 0 {
		t.Fatalf("translator ran after reasoning failure")
	}
	// The user entry was already appended when reasoning failed.
	if len(stageErr.Memory) != 1 || !strings.HasPrefix(stageErr.Memory[0], "User Response: ") {
		t.Fatalf("error memory = %v", stageErr.Memory)
	}
}

func TestRunTurnTranslationFailureKeepsAssistantEntry(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "hello", LanguageCode: "en-IN"}}
	translator := &stubTranslator{err: errors.New("quota")}
	synth := &stubSynthesizer{}
	o := newTestOrchestrator(transcriber, translator, synth, &stubReasoner{resp: brain.Response{FinalText: "Hi."}})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1}})
	if stageErr == nil {
		t.Fatal("RunTurn did not fail")
	}
	if stageErr.Message != "translation failed" {
		t.Fatalf("message = %q, want %q", stageErr.Message, "translation failed")
	}
	if synth.calls != 0 {
		t.Fatal("synthesizer ran after translation failure")
	}
	// Memory keeps both entries so the caller can resubmit with consistent context.
	if len(stageErr.Memory) != 2 {
		t.Fatalf("error memory length = %d, want 2", len(stageErr.Memory))
	}
	if stageErr.Memory[1] != "Shakti AI Response: Hi." {
		t.Fatalf("assistant entry = %q", stageErr.Memory[1])
	}
}

func TestRunTurnEmptySynthesisFails(t *testing.T) {
	transcriber := &stubTranscriber{transcript: Transcript{Text: "hello", LanguageCode: "en-IN"}}
	translator := &stubTranslator{out: "echo"}
	synth := &stubSynthesizer{out: ""}
	o := newTestOrchestrator(transcriber, translator, synth, &stubReasoner{resp: brain.Response{FinalText: "Hi."}})

	_, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1}})
	if stageErr == nil || stageErr.Message != "tts failed" {
		t.Fatalf("stageErr = %v, want tts failed", stageErr)
	}
}

func TestRunTurnCabBookingEndToEnd(t *testing.T) {
	var bookings int
	var booked struct {
		PickupLocation  string `json:"pickup_location"`
		DropoffLocation string `json:"dropoff_location"`
		Platform        string `json:"platform"`
	}
	fulfillment := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mock/cab-booking" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		bookings++
		if err := json.NewDecoder(r.Body).Decode(&booked); err != nil {
			t.Errorf("decode booking: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Your uber cab from home to the station has been booked.",
		})
	}))
	defer fulfillment.Close()

	dispatcher := tools.NewDispatcher(tools.NewConnectors(tools.Config{
		FulfillmentBaseURL: fulfillment.URL,
	}), 5*time.Second, nil)
	reasoner := brain.NewMockAdapter(dispatcher)

	provider := NewMockProvider()
	provider.TranscriptText = "Book me a cab from home to the station"

	o := NewOrchestrator(provider, provider, provider, reasoner, persona.NewLoader(""), nil, testMetrics, OrchestratorConfig{
		StageTimeout: 5 * time.Second,
	})

	resp, stageErr := o.RunTurn(context.Background(), TurnRequest{Audio: []byte{1, 2, 3}})
	if stageErr != nil {
		t.Fatalf("RunTurn failed: %v", stageErr)
	}

	if bookings != 1 {
		t.Fatalf("cab bookings = %d, want 1", bookings)
	}
	if booked.PickupLocation != "home" {
		t.Fatalf("pickup_location = %q, want home", booked.PickupLocation)
	}
	if booked.DropoffLocation != "the station" {
		t.Fatalf("dropoff_location = %q, want %q", booked.DropoffLocation, "the station")
	}
	if resp.AudioContent == "" {
		t.Fatal("audioContent is empty")
	}
	if len(resp.Memory) != 2 {
		t.Fatalf("memory length = %d, want 2", len(resp.Memory))
	}
	if !strings.Contains(resp.Memory[1], "has been booked") {
		t.Fatalf("assistant entry = %q, want booking confirmation", resp.Memory[1])
	}
}
