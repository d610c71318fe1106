package factory

import (
	"context"
	"fmt"

	"github.com/kardolus/ue-agent/agent/core"
	"github.com/kardolus/ue-agent/agent/react"
	"github.com/kardolus/ue-agent/agent/simple"
	"github.com/kardolus/ue-agent/agent/tools"
	"github.com/kardolus/ue-agent/agent/types"
)

type Agent interface {
	RunAgentGoal(ctx context.Context, goal string) (types.Outcome, error)
}

type Mode string

const (
	ModeSimple Mode = "simple"
	ModeReAct  Mode = "react"
)

type Deps struct {
	Clock     core.Clock
	Generator simple.Generator
	LLM       tools.LLM
	Runner    core.Runner
	Budget    core.Budget
}

func validateDepsForMode(mode Mode, deps Deps) error {
	if deps.Clock == nil {
		return fmt.Errorf("agent deps: Clock is required")
	}

	switch mode {
	case ModeSimple:
		if deps.Generator == nil {
			return fmt.Errorf("agent deps: Generator is required for mode %q", mode)
		}
		return nil

	case ModeReAct:
		if deps.LLM == nil {
			return fmt.Errorf("agent deps: LLM is required for mode %q", mode)
		}
		if deps.Runner == nil {
			return fmt.Errorf("agent deps: Runner is required for mode %q", mode)
		}
		if deps.Budget == nil {
			return fmt.Errorf("agent deps: Budget is required for mode %q", mode)
		}
		return nil

	default:
		return fmt.Errorf("unknown agent mode: %q", mode)
	}
}

func New(mode Mode, deps Deps, baseOpts ...core.BaseOption) (Agent, error) {
	if err := validateDepsForMode(mode, deps); err != nil {
		return nil, err
	}

	switch mode {
	case ModeSimple:
		return simple.NewSimpleAgent(deps.Generator, deps.Clock, baseOpts...), nil
	case ModeReAct:
		return react.NewReActAgent(deps.LLM, deps.Runner, deps.Budget, deps.Clock, baseOpts...), nil
	default:
		return nil, fmt.Errorf("unknown agent mode: %q", mode)
	}
}
