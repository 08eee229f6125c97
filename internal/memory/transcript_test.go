package memory

import (
	"reflect"
	"testing"
)

func TestAppendGrowsByOneEntryPerSpeaker(t *testing.T) {
	mem := []string{}
	mem = AppendUser(mem, "hi")
	mem = AppendAssistant(mem, "hello")

	if len(mem) != 2 {
		t.Fatalf("len(mem) = %d, want 2", len(mem))
	}
	if mem[0] != "User Response: hi" {
		t.Fatalf("mem[0] = %q, want %q", mem[0], "User Response: hi")
	}
	if mem[1] != "Shakti AI Response: hello" {
		t.Fatalf("mem[1] = %q, want %q", mem[1], "Shakti AI Response: hello")
	}
}

func TestMessagesRoleParity(t *testing.T) {
	mem := []string{
		"User Response: hi",
		"Shakti AI Response: hello",
		"User Response: what is my name",
	}
	msgs := Messages(mem)
	wantRoles := []string{RoleUser, RoleAssistant, RoleUser}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Fatalf("msgs[%d].Role = %q, want %q", i, m.Role, wantRoles[i])
		}
		if m.Content != mem[i] {
			t.Fatalf("msgs[%d].Content = %q, want %q", i, m.Content, mem[i])
		}
	}
}

func TestWithCurrentTurnThreadsPriorTurns(t *testing.T) {
	mem := []string{"User Response: hi", "Shakti AI Response: hello"}
	msgs := WithCurrentTurn(mem, "what is my name")

	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, want 3", len(msgs))
	}
	wantRoles := []string{RoleUser, RoleAssistant, RoleUser}
	for i, m := range msgs {
		if m.Role != wantRoles[i] {
			t.Fatalf("msgs[%d].Role = %q, want %q", i, m.Role, wantRoles[i])
		}
	}
	if msgs[2].Content != "User Response: what is my name" {
		t.Fatalf("msgs[2].Content = %q, want tagged current utterance", msgs[2].Content)
	}
}

func TestWithCurrentTurnIdempotentAppend(t *testing.T) {
	mem := AppendUser([]string{"User Response: hi", "Shakti AI Response: hello"}, "what is my name")

	first := WithCurrentTurn(mem, "what is my name")
	second := WithCurrentTurn(mem, "what is my name")

	if len(first) != 3 {
		t.Fatalf("len(first) = %d, want 3 (no duplicate of current utterance)", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated WithCurrentTurn differs: %v vs %v", first, second)
	}
}

func TestWithCurrentTurnEmptyMemory(t *testing.T) {
	msgs := WithCurrentTurn(nil, "hello there")
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	if msgs[0].Role != RoleUser {
		t.Fatalf("msgs[0].Role = %q, want %q", msgs[0].Role, RoleUser)
	}
}

func TestParseLenient(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"valid array", `["User Response: hi","Shakti AI Response: hello"]`, 2},
		{"empty string", "", 0},
		{"invalid json", `{"not":"an array"`, 0},
		{"non-array value", `{"a":1}`, 0},
		{"number", `42`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.raw)
			if len(got) != tc.want {
				t.Fatalf("Parse(%q) len = %d, want %d", tc.raw, len(got), tc.want)
			}
		})
	}
}
