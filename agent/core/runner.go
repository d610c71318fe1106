package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kardolus/ue-agent/agent/tools"
	"github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/command"
)

const transcriptMaxBytes = 64_000

type Tools struct {
	Files   tools.Files
	Builder tools.Builder
}

type Runner interface {
	RunStep(ctx context.Context, cfg types.Config, step types.Step) (types.StepResult, error)
}

type DefaultRunner struct {
	tools  Tools
	clock  Clock
	budget Budget
	policy Policy
}

func NewDefaultRunner(t Tools, c Clock, b Budget, p Policy) *DefaultRunner {
	return &DefaultRunner{tools: t, clock: c, budget: b, policy: p}
}

// RunStep executes one tool call. Tool failures come back as an OutcomeError
// result with a nil error so the agent can observe them and recover; only
// budget and policy stops return an error.
func (r *DefaultRunner) RunStep(ctx context.Context, cfg types.Config, step types.Step) (types.StepResult, error) {
	start := r.clock.Now()

	// HARD STOP: policy gate
	if err := r.policy.AllowStep(cfg, step); err != nil {
		tr := appendPolicyError(buildStartTranscript(step), err)
		return r.stopResult(start, step, tr, err), err
	}

	desc, ok := types.LookupTool(string(step.Tool))
	if !ok {
		// SOFT FAIL: agent can pick a registered tool
		err := fmt.Errorf("%s is not a valid tool, try one of [%s]", step.Tool, strings.Join(types.ToolNames(), ", "))
		return r.softStepError(start, step, buildStartTranscript(step), err), nil
	}

	args, err := command.SplitArgs(step.Input, types.ToolDelimiter, desc.Arity)
	if err != nil {
		// SOFT FAIL: agent can correct the input format
		err = fmt.Errorf("invalid input for %s: %s. %s", step.Tool, err.Error(), desc.Usage)
		return r.softStepError(start, step, buildStartTranscript(step), err), nil
	}

	args[0] = resolvePath(cfg.WorkDir, args[0])

	if cfg.DryRun && desc.Mutating {
		return types.StepResult{
			Step:       step,
			Outcome:    types.OutcomeDryRun,
			Output:     describeDryRun(step.Tool, args),
			Transcript: limitTranscript(buildDryRunTranscript(step, args), transcriptMaxBytes),
			Duration:   Since(r.clock, start),
		}, nil
	}

	// HARD STOP: tool budget gate
	if err := r.budget.AllowTool(step.Tool, start); err != nil {
		tr := appendBudgetError(buildStartTranscript(step), err)
		return r.stopResult(start, step, tr, err), err
	}

	res := r.dispatch(ctx, step.Tool, args)

	outcome := types.OutcomeOK
	if !res.OK() {
		outcome = types.OutcomeError // already soft: err is nil
	}

	return types.StepResult{
		Step:       step,
		Outcome:    outcome,
		Output:     res.String(),
		Transcript: limitTranscript(buildToolTranscript(step, res), transcriptMaxBytes),
		Duration:   Since(r.clock, start),
	}, nil
}

func (r *DefaultRunner) dispatch(ctx context.Context, kind types.ToolKind, args []string) tools.Result {
	switch kind {
	case types.ToolReadFile:
		return tools.Render(r.tools.Files.Read(args[0]))
	case types.ToolWriteFile:
		return tools.Render(r.tools.Files.Write(args[0], args[1]))
	case types.ToolListDirectory:
		return tools.Render(r.tools.Files.List(args[0]))
	case types.ToolSearchFiles:
		return tools.Render(r.tools.Files.Search(args[0], args[1]))
	case types.ToolAnalyzeProject:
		return tools.Render(r.tools.Files.AnalyzeProject(args[0]))
	case types.ToolBuildProject:
		res, err := r.tools.Builder.Build(ctx, args[0], args[1])
		if err != nil {
			return tools.Failure(err)
		}
		return tools.RenderBuild(res)
	default:
		return tools.Failure(fmt.Errorf("unsupported tool: %s", kind))
	}
}

func (r *DefaultRunner) stopResult(start time.Time, step types.Step, tr string, err error) types.StepResult {
	return types.StepResult{
		Step:       step,
		Outcome:    types.OutcomeError,
		Transcript: limitTranscript(tr, transcriptMaxBytes),
		Duration:   Since(r.clock, start),
		Output:     err.Error(),
	}
}

func (r *DefaultRunner) softStepError(start time.Time, step types.Step, tr string, err error) types.StepResult {
	if tr != "" && !strings.HasSuffix(tr, "\n") {
		tr += "\n"
	}
	tr += fmt.Sprintf("[error] %v\n", err)

	return types.StepResult{
		Step:       step,
		Outcome:    types.OutcomeError,
		Output:     err.Error(),
		Transcript: limitTranscript(tr, transcriptMaxBytes),
		Duration:   Since(r.clock, start),
	}
}

// resolvePath anchors relative paths at the working directory.
func resolvePath(workDir, p string) string {
	if p == "" || filepath.IsAbs(p) || workDir == "" || workDir == "." {
		return p
	}
	return filepath.Join(workDir, p)
}

func describeDryRun(kind types.ToolKind, args []string) string {
	switch kind {
	case types.ToolWriteFile:
		return fmt.Sprintf("[dry-run] would write %d bytes to %s", len(args[1]), args[0])
	case types.ToolBuildProject:
		return fmt.Sprintf("[dry-run] would build %s (%s)", args[0], args[1])
	default:
		return fmt.Sprintf("[dry-run] would run %s on %s", kind, args[0])
	}
}

func appendBudgetError(tr string, err error) string {
	if tr != "" && !strings.HasSuffix(tr, "\n") {
		tr += "\n"
	}
	return tr + fmt.Sprintf("[budget] %v\n", err)
}

func appendPolicyError(tr string, err error) string {
	if tr != "" && !strings.HasSuffix(tr, "\n") {
		tr += "\n"
	}
	return tr + fmt.Sprintf("[policy] %v\n", err)
}

func buildStartTranscript(step types.Step) string {
	return fmt.Sprintf("[tool:start] tool=%q input_len=%d\n", step.Tool, len(step.Input))
}

func buildDryRunTranscript(step types.Step, args []string) string {
	return fmt.Sprintf("[dry-run][tool] tool=%q path=%q input_len=%d\n", step.Tool, args[0], len(step.Input))
}

func buildToolTranscript(step types.Step, res tools.Result) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "[tool] tool=%q input_len=%d\n", step.Tool, len(step.Input))
	if res.OK() {
		b.WriteString("status=ok\n")
	} else {
		_, _ = fmt.Fprintf(&b, "status=error kind=%s\n", res.Kind)
	}
	b.WriteString("output:\n")
	b.WriteString(res.String())
	if !strings.HasSuffix(res.Text, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func limitTranscript(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "\n…(truncated)\n"
}
