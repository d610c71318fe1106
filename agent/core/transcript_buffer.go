package core

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

const defaultTruncationBanner = "\n…(truncated)\n"

// TranscriptBuffer is an append-only text log capped at max bytes. When the
// cap is exceeded the oldest text is dropped and a banner marks the cut.
type TranscriptBuffer struct {
	mu     sync.Mutex
	max    int
	b      []byte
	banner []byte
}

func NewTranscriptBuffer(maxBytes int) *TranscriptBuffer {
	if maxBytes < 0 {
		maxBytes = 0
	}
	return &TranscriptBuffer{
		max:    maxBytes,
		b:      make([]byte, 0, min(maxBytes, 4096)),
		banner: []byte(defaultTruncationBanner),
	}
}

func (t *TranscriptBuffer) AppendString(s string) {
	if t == nil || s == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.max <= 0 {
		t.b = t.b[:0]
		return
	}

	// Normalize: keep entries line-oriented
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	t.b = append(t.b, s...)
	t.enforceCapLocked()
}

// AppendRaw appends s verbatim, without newline normalization. The scratchpad
// uses it because a ReAct turn ends mid-line ("Thought: ").
func (t *TranscriptBuffer) AppendRaw(s string) {
	if t == nil || s == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.max <= 0 {
		t.b = t.b[:0]
		return
	}

	t.b = append(t.b, s...)
	t.enforceCapLocked()
}

func (t *TranscriptBuffer) Appendf(format string, args ...any) {
	t.AppendString(fmt.Sprintf(format, args...))
}

func (t *TranscriptBuffer) String() string {
	if t == nil {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.b)
}

func (t *TranscriptBuffer) Len() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.b)
}

func (t *TranscriptBuffer) Cap() int {
	if t == nil {
		return 0
	}
	return t.max
}

func (t *TranscriptBuffer) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.b = t.b[:0]
}

// enforceCapLocked keeps the most recent bytes, cut on a rune boundary, with
// exactly one banner in front when it fits.
func (t *TranscriptBuffer) enforceCapLocked() {
	if len(t.b) <= t.max {
		return
	}

	body := bytes.TrimPrefix(t.b, t.banner)

	room := t.max
	withBanner := len(t.banner) < t.max
	if withBanner {
		room -= len(t.banner)
	}

	cut := len(body) - room
	if cut < 0 {
		cut = 0
	}
	for cut < len(body) && !utf8.RuneStart(body[cut]) {
		cut++
	}

	out := make([]byte, 0, t.max)
	if withBanner {
		out = append(out, t.banner...)
	}
	out = append(out, body[cut:]...)
	t.b = out
}
