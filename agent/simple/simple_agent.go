package simple

import (
	"context"

	"github.com/kardolus/ue-agent/agent/core"
	"github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/api/client"
)

//go:generate mockgen -destination=generatormocks_test.go -package=simple_test github.com/kardolus/ue-agent/agent/simple Generator
type Generator interface {
	Generate(ctx context.Context, prompt string) (client.Generation, error)
}

// SimpleAgent sends the request to the model as-is and returns the text.
type SimpleAgent struct {
	*core.BaseAgent
	Gen Generator
}

func NewSimpleAgent(gen Generator, clock core.Clock, opts ...core.BaseOption) *SimpleAgent {
	base := core.NewBaseAgent(clock)
	for _, o := range opts {
		o(base)
	}

	return &SimpleAgent{BaseAgent: base, Gen: gen}
}

func (a *SimpleAgent) RunAgentGoal(ctx context.Context, goal string) (types.Outcome, error) {
	start := a.StartTimer()
	defer a.FinishTimer(start)

	a.LogMode(goal, "Simple (single generation)")

	gen, err := a.Gen.Generate(ctx, goal)
	if err != nil {
		a.Debug.Errorf("generate failed: %v", err)
		return types.Outcome{}, err
	}

	stats := gen.Stats()
	a.Debug.Debugf("generation eval_count=%d eval_duration=%s prompt_eval_count=%d",
		gen.EvalCount, gen.EvalDuration, gen.PromptEvalCount)
	a.AddTranscriptf("[generate] tokens=%d duration=%s", gen.EvalCount, gen.EvalDuration)

	return types.Outcome{
		Answer:     gen.Text,
		Iterations: 1,
		Reason:     types.StopGenerated,
		Stats:      stats,
		Tokens:     gen.PromptEvalCount + gen.EvalCount,
	}, nil
}
