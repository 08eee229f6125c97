package protocol

import (
	"encoding/json"
	"testing"
)

func TestStageErrorBodyNamesStage(t *testing.T) {
	e := NewStageError(StageSTT, "stt failed", 500, map[string]any{"detail": "no transcript"})
	body := e.Body()

	if body["error"] != "stt failed" {
		t.Fatalf(`body["error"] = %v, want "stt failed"`, body["error"])
	}
	if _, ok := body["sttData"]; !ok {
		t.Fatalf("body missing sttData diagnostic: %v", body)
	}
	if _, ok := body["memory"]; ok {
		t.Fatalf("body should omit memory when none recorded: %v", body)
	}
}

func TestStageErrorBodyCarriesMemory(t *testing.T) {
	e := NewStageError(StageTranslation, "translation failed", 500, nil)
	e.Memory = []string{"User Response: hi", "Shakti AI Response: hello"}

	raw, err := json.Marshal(e.Body())
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	mem, ok := decoded["memory"].([]any)
	if !ok || len(mem) != 2 {
		t.Fatalf("memory = %v, want 2 threaded entries", decoded["memory"])
	}
}

func TestStageErrorDetailKeys(t *testing.T) {
	cases := []struct {
		stage Stage
		key   string
	}{
		{StageSTT, "sttData"},
		{StageReasoning, "aiData"},
		{StageTranslation, "translateData"},
		{StageSynthesis, "ttsData"},
	}
	for _, tc := range cases {
		e := NewStageError(tc.stage, "failed", 500, "diag")
		if _, ok := e.Body()[tc.key]; !ok {
			t.Fatalf("stage %s: body missing %s", tc.stage, tc.key)
		}
	}

	input := NewStageError(StageInput, "missing file", 400, "diag")
	body := input.Body()
	if len(body) != 1 {
		t.Fatalf("input stage body = %v, want error only", body)
	}
}
