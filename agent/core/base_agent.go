package core

import (
	"strings"
	"time"

	"github.com/kardolus/ue-agent/agent/types"
	roles "github.com/kardolus/ue-agent/types"
	"go.uber.org/zap"
)

const (
	DefaultScratchpadMaxBytes    = 16 * 1024
	defaultTranscriptMaxBytes    = 64 * 1024
	defaultPromptHistoryMaxBytes = 16 * 1024
)

// BaseAgent holds what every agent mode shares: clock, run config, the two
// run loggers, the run transcript and the chat memory fed back into prompts.
type BaseAgent struct {
	Clock  Clock
	Config types.Config

	Out   *zap.SugaredLogger
	Debug *zap.SugaredLogger

	SyncOut   func()
	SyncDebug func()

	// Transcript collects step records for the current run; FinishTimer
	// writes it to the human log and clears it.
	Transcript    *TranscriptBuffer
	PromptHistory *TranscriptBuffer

	ScratchpadMaxBytes int
}

type BaseOption func(*BaseAgent)

func WithDryRun(v bool) BaseOption {
	return func(b *BaseAgent) { b.Config.DryRun = v }
}

func WithWorkDir(d string) BaseOption {
	return func(b *BaseAgent) {
		d = strings.TrimSpace(d)
		if d != "" {
			b.Config.WorkDir = d
		}
	}
}

func WithHumanLogger(l *zap.SugaredLogger, sync func()) BaseOption {
	return func(b *BaseAgent) {
		if l != nil {
			b.Out = l
		}
		if sync != nil {
			b.SyncOut = sync
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger, sync func()) BaseOption {
	return func(b *BaseAgent) {
		if l != nil {
			b.Debug = l
		}
		if sync != nil {
			b.SyncDebug = sync
		}
	}
}

func WithPromptHistoryMaxBytes(n int) BaseOption {
	return func(b *BaseAgent) {
		if n > 0 {
			b.PromptHistory = NewTranscriptBuffer(n)
		}
	}
}

func WithScratchpadMaxBytes(n int) BaseOption {
	return func(b *BaseAgent) {
		if n > 0 {
			b.ScratchpadMaxBytes = n
		}
	}
}

func NewBaseAgent(clock Clock) *BaseAgent {
	return &BaseAgent{
		Clock:              clock,
		Config:             types.Config{DryRun: false, WorkDir: "."},
		Out:                zap.NewNop().Sugar(),
		Debug:              zap.NewNop().Sugar(),
		Transcript:         NewTranscriptBuffer(defaultTranscriptMaxBytes),
		PromptHistory:      NewTranscriptBuffer(defaultPromptHistoryMaxBytes),
		ScratchpadMaxBytes: DefaultScratchpadMaxBytes,
	}
}

func (b *BaseAgent) LogMode(goal, mode string) {
	b.Out.Infof("Goal: %s", goal)
	if mode != "" {
		b.Out.Infof("Mode: %s\n", mode)
	} else {
		b.Out.Info("")
	}
}

func (b *BaseAgent) StartTimer() time.Time {
	return b.Clock.Now()
}

func (b *BaseAgent) FinishTimer(start time.Time) {
	dur := Since(b.Clock, start)
	b.Out.Infof("Total duration: %s", dur)
	b.Debug.Infof("Total duration: %s", dur)
	b.flushTranscript()

	if b.SyncOut != nil {
		b.SyncOut()
	}
	if b.SyncDebug != nil {
		b.SyncDebug()
	}
}

// NewScratchpad returns an empty per-request scratchpad sized from the agent config.
func (b *BaseAgent) NewScratchpad() *TranscriptBuffer {
	n := b.ScratchpadMaxBytes
	if n <= 0 {
		n = DefaultScratchpadMaxBytes
	}
	return NewTranscriptBuffer(n)
}

func (b *BaseAgent) AddTranscript(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	if b.Transcript == nil {
		b.Transcript = NewTranscriptBuffer(defaultTranscriptMaxBytes)
	}
	b.Transcript.AppendString(s)
}

func (b *BaseAgent) AddTranscriptf(format string, args ...any) {
	if b.Transcript == nil {
		b.Transcript = NewTranscriptBuffer(defaultTranscriptMaxBytes)
	}
	b.Transcript.Appendf(format, args...)
}

func (b *BaseAgent) flushTranscript() {
	s := b.TranscriptString()
	if strings.TrimSpace(s) == "" {
		return
	}
	b.Out.Infof("Transcript:\n%s", strings.TrimRight(s, "\n"))
	b.Transcript.Reset()
}

func (b *BaseAgent) TranscriptString() string {
	if b.Transcript == nil {
		return ""
	}
	return b.Transcript.String()
}

// AddTurn records one side of the conversation in the chat memory.
func (b *BaseAgent) AddTurn(turn roles.Turn) {
	if strings.TrimSpace(turn.Text) == "" {
		return
	}
	if b.PromptHistory == nil {
		b.PromptHistory = NewTranscriptBuffer(defaultPromptHistoryMaxBytes)
	}
	b.PromptHistory.AppendString(turn.String())
}

func (b *BaseAgent) History() string {
	if b.PromptHistory == nil {
		return ""
	}
	return b.PromptHistory.String()
}
