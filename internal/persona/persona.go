package persona

import (
	"os"
	"strings"
	"sync"
	"time"
)

// DefaultPrompt encodes the voice-medium behavioral policy for the assistant.
// It is intentionally plain text: the reply travels through translation and
// speech synthesis, so markup of any kind would be spoken aloud.
const DefaultPrompt = `You are Shakti, a warm and reliable voice assistant reached over a phone call.
Your replies are spoken aloud, so:
- Never use markdown, bullet points, emoji, or special symbols.
- Keep answers short, polite, and easy to follow by ear.
- Use the conversation memory to recall personal facts the caller already told you, such as their name.
When a task needs a booking, an order, weather, or news, call the matching tool instead of inventing a result. After a tool responds, relay its outcome to the caller in one or two natural sentences.`

// Loader serves the system prompt, optionally from a hot-reloadable file.
// The file is re-read when its mtime changes, so the persona can be edited
// without restarting the service.
type Loader struct {
	path string

	mu       sync.Mutex
	cached   string
	checked  time.Time
	modTime  time.Time
	minCheck time.Duration
}

func NewLoader(path string) *Loader {
	return &Loader{path: strings.TrimSpace(path), minCheck: 2 * time.Second}
}

// Prompt returns the active system prompt. Falls back to DefaultPrompt when
// no file is configured or the file cannot be read.
func (l *Loader) Prompt() string {
	if l == nil || l.path == "" {
		return DefaultPrompt
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if l.cached != "" && now.Sub(l.checked) < l.minCheck {
		return l.cached
	}
	l.checked = now

	info, err := os.Stat(l.path)
	if err != nil {
		if l.cached != "" {
			return l.cached
		}
		return DefaultPrompt
	}
	if l.cached != "" && info.ModTime().Equal(l.modTime) {
		return l.cached
	}

	data, err := os.ReadFile(l.path)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		if l.cached != "" {
			return l.cached
		}
		return DefaultPrompt
	}

	l.cached = strings.TrimSpace(string(data))
	l.modTime = info.ModTime()
	return l.cached
}
