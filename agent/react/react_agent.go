package react

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/kardolus/ue-agent/agent/core"
	"github.com/kardolus/ue-agent/agent/tools"
	"github.com/kardolus/ue-agent/agent/types"
	roles "github.com/kardolus/ue-agent/types"
)

// MaxIterationsAnswer is returned when the loop runs out of iterations.
const MaxIterationsAnswer = "Agent stopped due to max iterations."

type ReActAgent struct {
	*core.BaseAgent
	LLM    tools.LLM
	Runner core.Runner
	Budget core.Budget
}

func NewReActAgent(llm tools.LLM, runner core.Runner, budget core.Budget, clock core.Clock, opts ...core.BaseOption) *ReActAgent {
	base := core.NewBaseAgent(clock)
	for _, o := range opts {
		o(base)
	}

	return &ReActAgent{
		BaseAgent: base,
		LLM:       llm,
		Runner:    runner,
		Budget:    budget,
	}
}

// RunAgentGoal answers goal by alternating model turns and tool calls until
// the model gives a final answer or the iteration budget runs out. Malformed
// model output and unknown tools become observations; inference errors and
// budget or policy stops end the run with an error.
func (a *ReActAgent) RunAgentGoal(ctx context.Context, goal string) (types.Outcome, error) {
	start := a.StartTimer()
	defer a.FinishTimer(start)

	a.Budget.Start(start)
	a.LogMode(goal, "ReAct (iterative reasoning + acting)")

	out := a.Out
	dbg := a.Debug

	history := a.History()
	scratchpad := a.NewScratchpad()
	state := types.LoopState{}

	for !state.Done {
		now := a.Clock.Now()

		if err := a.Budget.AllowIteration(now); err != nil {
			if core.IsIterationStop(err) {
				out.Infof("Stopped after %d iterations", state.Iteration)
				dbg.Debugf("iteration budget exhausted: %v", err)
				state.Done, state.Reason = true, types.StopMaxIterations
				break
			}
			dbg.Errorf("budget exceeded at iteration %d: %v", state.Iteration+1, err)
			return types.Outcome{}, err
		}
		state.Iteration++
		i := state.Iteration

		prompt := buildPrompt(history, goal, scratchpad.String())
		dbg.Debugf("react iteration %d prompt_len=%d", i, len(prompt))

		raw, tokens, err := a.LLM.Complete(ctx, prompt)
		if err != nil {
			dbg.Errorf("LLM error at iteration %d: %v", i, err)
			return types.Outcome{}, err
		}
		a.Budget.ChargeLLMTokens(tokens, now)
		dbg.Debugf("react iteration %d tokens=%d", i, tokens)

		generated := cutAtObservation(raw)

		d, err := parseOutput(generated)
		if err != nil {
			out.Errorf("[Iteration %d] Failed to parse model output: %s", i, roles.Message(err))
			dbg.Errorf("parse error at iteration %d: %v\nraw: %s", i, err, raw)
			scratchpad.AppendRaw(scratchpadEntry(generated, roles.Message(err)))
			state.Transcript = scratchpad.String()
			continue
		}

		if d.Thought != "" {
			out.Infof("[Iteration %d] Thought: %s", i, d.Thought)
		}

		if d.Final {
			answer := strings.TrimRightFunc(d.Answer, unicode.IsSpace)
			out.Infof("\nResult: %s\n", answer)
			state.Done, state.Reason = true, types.StopFinalAnswer
			return a.finish(goal, answer, state), nil
		}

		if _, ok := types.LookupTool(d.Action); !ok {
			obs := invalidToolObservation(d.Action)
			out.Errorf("[Iteration %d] %s", i, obs)
			scratchpad.AppendRaw(scratchpadEntry(generated, obs))
			state.Transcript = scratchpad.String()
			continue
		}

		step := types.Step{
			Tool:        types.ToolKind(d.Action),
			Input:       d.Input,
			Description: fmt.Sprintf("%s %s", d.Action, truncateForDisplay(d.Input, 80)),
		}
		out.Infof("[Iteration %d] Action: %s", i, step.Description)

		res, err := a.Runner.RunStep(ctx, a.Config, step)
		a.AddTranscript(res.Transcript)

		if err != nil {
			if core.IsBudgetStop(err, out) || core.IsPolicyStop(err, out) {
				dbg.Errorf("stop error at iteration %d: %v", i, err)
				return types.Outcome{}, err
			}

			out.Errorf("Step failed: %s: %v", step.Description, err)
			dbg.Errorf("step failed at iteration %d: %v transcript=%q", i, err, res.Transcript)
			return types.Outcome{}, err
		}

		if res.Outcome == types.OutcomeError {
			out.Errorf("[Iteration %d] Step failed: %s", i, step.Description)
		}
		out.Infof("[Iteration %d] Observation: %s (took %s)", i, truncateForDisplay(res.Output, 100), res.Duration)
		dbg.Debugf("observation (iteration %d): %q", i, res.Output)

		scratchpad.AppendRaw(scratchpadEntry(generated, res.Output))
		state.Transcript = scratchpad.String()
	}

	return a.finish(goal, MaxIterationsAnswer, state), nil
}

func (a *ReActAgent) finish(goal, answer string, state types.LoopState) types.Outcome {
	a.AddTurn(roles.Turn{Role: roles.RoleUser, Text: goal})
	a.AddTurn(roles.Turn{Role: roles.RoleAgent, Text: answer})

	if state.Transcript != "" {
		a.Debug.Debugf("scratchpad after %d iteration(s) (%s):\n%s", state.Iteration, state.Reason, state.Transcript)
	}

	return types.Outcome{
		Answer:     answer,
		Iterations: state.Iteration,
		Reason:     state.Reason,
		Stats:      a.stats(state),
		Tokens:     a.Budget.Snapshot(a.Clock.Now()).LLMTokensUsed,
	}
}

func (a *ReActAgent) stats(state types.LoopState) string {
	snap := a.Budget.Snapshot(a.Clock.Now())
	return fmt.Sprintf("%d iteration(s), %d tool call(s), %d tokens in %.2fs",
		state.Iteration, snap.ToolCallsUsed, snap.LLMTokensUsed, snap.Elapsed.Seconds())
}

func truncateForDisplay(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
