package memory

import (
	"encoding/json"
	"strings"
)

// Conversation memory is an ordered transcript threaded by the caller across
// turns of one call. Entries are opaque strings; position parity determines
// the speaker (even index = user, odd index = assistant). The service only
// ever appends, never reorders or deletes.

const (
	userEntryPrefix      = "User Response: "
	assistantEntryPrefix = "Shakti AI Response: "
)

// Message is one role-tagged entry in the sequence handed to the reasoner.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AppendUser appends the caller's utterance as a tagged user entry.
func AppendUser(mem []string, text string) []string {
	return append(mem, userEntryPrefix+text)
}

// AppendAssistant appends the assistant's reply as a tagged assistant entry.
func AppendAssistant(mem []string, text string) []string {
	return append(mem, assistantEntryPrefix+text)
}

// Messages maps the transcript to role-tagged messages by position parity.
func Messages(mem []string) []Message {
	out := make([]Message, 0, len(mem))
	for i, entry := range mem {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		out = append(out, Message{Role: role, Content: entry})
	}
	return out
}

// WithCurrentTurn returns the message sequence ending in the current user
// utterance. When the transcript's last entry already carries the utterance
// (the orchestrator appends before reasoning), no duplicate is added.
func WithCurrentTurn(mem []string, current string) []Message {
	msgs := Messages(mem)
	if len(mem) > 0 {
		last := mem[len(mem)-1]
		if last == current || last == userEntryPrefix+current {
			return msgs
		}
	}
	return append(msgs, Message{Role: RoleUser, Content: userEntryPrefix + current})
}

// Parse decodes a caller-supplied memory payload. Anything that is not a
// JSON array of strings yields an empty transcript rather than an error:
// a malformed memory should restart context, not fail the turn.
func Parse(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var mem []string
	if err := json.Unmarshal([]byte(raw), &mem); err != nil {
		return nil
	}
	return mem
}
