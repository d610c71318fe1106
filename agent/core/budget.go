package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/kardolus/ue-agent/agent/types"
	"go.uber.org/zap"
)

type Budget interface {
	Start(now time.Time)
	AllowIteration(now time.Time) error
	AllowTool(kind types.ToolKind, now time.Time) error
	ChargeLLMTokens(tokens int, now time.Time)
	Snapshot(now time.Time) BudgetSnapshot
}

const (
	BudgetKindToolCalls  = "tool_calls"
	BudgetKindLLMTokens  = "llm_tokens"
	BudgetKindWallTime   = "wall_time"
	BudgetKindIterations = "iterations"
	BudgetKindUnknown    = "unknown_tool"
)

// DefaultMaxIterations caps a run whose limits leave MaxIterations unset.
const DefaultMaxIterations = 10

// BudgetLimits bounds one agent run. Zero means unlimited, except for
// MaxIterations, which is always bounded.
type BudgetLimits struct {
	MaxIterations int
	MaxToolCalls  int
	MaxLLMTokens  int
	MaxWallTime   time.Duration
}

type BudgetSnapshot struct {
	StartedAt      time.Time
	Elapsed        time.Duration
	Limits         BudgetLimits
	IterationsUsed int
	ToolCallsUsed  int
	LLMTokensUsed  int
	ToolUse        map[types.ToolKind]int
}

type DefaultBudget struct {
	limits BudgetLimits

	started   bool
	startedAt time.Time

	iterationsUsed int
	toolCallsUsed  int
	llmTokensUsed  int
	toolUse        map[types.ToolKind]int
}

func NewDefaultBudget(limits BudgetLimits) *DefaultBudget {
	if limits.MaxIterations <= 0 {
		limits.MaxIterations = DefaultMaxIterations
	}
	return &DefaultBudget{limits: limits, toolUse: map[types.ToolKind]int{}}
}

// Start resets all counters. Agents call it once per user request.
func (b *DefaultBudget) Start(now time.Time) {
	b.started = true
	b.startedAt = now
	b.iterationsUsed = 0
	b.toolCallsUsed = 0
	b.llmTokensUsed = 0
	b.toolUse = map[types.ToolKind]int{}
}

func (b *DefaultBudget) Snapshot(now time.Time) BudgetSnapshot {
	b.ensureStarted(now)

	elapsed := now.Sub(b.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	use := make(map[types.ToolKind]int, len(b.toolUse))
	for k, v := range b.toolUse {
		use[k] = v
	}

	return BudgetSnapshot{
		StartedAt:      b.startedAt,
		Elapsed:        elapsed,
		Limits:         b.limits,
		IterationsUsed: b.iterationsUsed,
		ToolCallsUsed:  b.toolCallsUsed,
		LLMTokensUsed:  b.llmTokensUsed,
		ToolUse:        use,
	}
}

func (b *DefaultBudget) ChargeLLMTokens(tokens int, now time.Time) {
	b.ensureStarted(now)
	if tokens <= 0 {
		return
	}
	b.llmTokensUsed += tokens
}

func (b *DefaultBudget) AllowIteration(now time.Time) error {
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	if b.limits.MaxLLMTokens > 0 && b.llmTokensUsed >= b.limits.MaxLLMTokens {
		return BudgetExceededError{
			Kind:    BudgetKindLLMTokens,
			Limit:   b.limits.MaxLLMTokens,
			Used:    b.llmTokensUsed,
			Message: "llm token budget exceeded",
		}
	}

	if b.iterationsUsed+1 > b.limits.MaxIterations {
		return BudgetExceededError{
			Kind:    BudgetKindIterations,
			Limit:   b.limits.MaxIterations,
			Used:    b.iterationsUsed,
			Message: "iteration budget exceeded",
		}
	}

	b.iterationsUsed++
	return nil
}

func (b *DefaultBudget) AllowTool(kind types.ToolKind, now time.Time) error {
	b.ensureStarted(now)

	if err := b.checkWall(now); err != nil {
		return err
	}

	if _, ok := types.LookupTool(string(kind)); !ok {
		return fmt.Errorf("unknown tool kind: %q", kind)
	}

	if b.limits.MaxToolCalls > 0 && b.toolCallsUsed+1 > b.limits.MaxToolCalls {
		return BudgetExceededError{
			Kind:    BudgetKindToolCalls,
			Limit:   b.limits.MaxToolCalls,
			Used:    b.toolCallsUsed,
			Message: "tool call budget exceeded",
		}
	}

	b.toolCallsUsed++
	b.toolUse[kind]++
	return nil
}

func (b *DefaultBudget) ensureStarted(now time.Time) {
	if b.started {
		return
	}
	b.Start(now)
}

func (b *DefaultBudget) checkWall(now time.Time) error {
	if b.limits.MaxWallTime <= 0 {
		return nil
	}
	elapsed := now.Sub(b.startedAt)
	if elapsed > b.limits.MaxWallTime {
		return BudgetExceededError{
			Kind:    BudgetKindWallTime,
			LimitD:  b.limits.MaxWallTime,
			UsedD:   elapsed,
			Message: "wall time budget exceeded",
		}
	}
	return nil
}

// BudgetExceededError is a typed error so the agent can branch on it.
type BudgetExceededError struct {
	// "iterations" | "tool_calls" | "llm_tokens" | "wall_time"
	Kind    string
	Limit   int
	Used    int
	LimitD  time.Duration
	UsedD   time.Duration
	Message string
}

func (e BudgetExceededError) Error() string {
	switch e.Kind {
	case BudgetKindWallTime:
		return fmt.Sprintf("%s: limit=%s used=%s", e.Message, e.LimitD, e.UsedD)
	default:
		return fmt.Sprintf("%s: kind=%s limit=%d used=%d", e.Message, e.Kind, e.Limit, e.Used)
	}
}

// IsIterationStop reports whether err is the iteration cap running out.
func IsIterationStop(err error) bool {
	var be BudgetExceededError
	return errors.As(err, &be) && be.Kind == BudgetKindIterations
}

// IsBudgetStop reports whether err is a budget stop and logs it when it is.
func IsBudgetStop(err error, out *zap.SugaredLogger) bool {
	var be BudgetExceededError
	if !errors.As(err, &be) {
		return false
	}
	if out != nil {
		out.Errorf("Budget stop: %s", be.Error())
	}
	return true
}
