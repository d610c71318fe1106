package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/command"
	"go.uber.org/zap"
)

type Policy interface {
	AllowStep(cfg types.Config, step types.Step) error
}

const (
	PolicyKindTool       = "tool"
	PolicyKindInput      = "input"
	PolicyKindPathEscape = "path_escape"
)

type PolicyLimits struct {
	AllowedTools           []types.ToolKind
	RestrictFilesToWorkDir bool
}

type DefaultPolicy struct {
	limits PolicyLimits
}

func NewDefaultPolicy(limits PolicyLimits) *DefaultPolicy {
	return &DefaultPolicy{limits: limits}
}

func (p *DefaultPolicy) AllowStep(cfg types.Config, step types.Step) error {
	desc, ok := types.LookupTool(string(step.Tool))
	if !ok {
		return PolicyDeniedError{
			Kind:   PolicyKindTool,
			Reason: fmt.Sprintf("unsupported tool: %s", step.Tool),
		}
	}

	if len(p.limits.AllowedTools) > 0 && !containsTool(p.limits.AllowedTools, step.Tool) {
		return PolicyDeniedError{
			Kind:   PolicyKindTool,
			Reason: fmt.Sprintf("tool not allowed: %s", step.Tool),
		}
	}

	if !p.limits.RestrictFilesToWorkDir || cfg.WorkDir == "" {
		return nil
	}

	// every tool takes a path as its first argument
	args, err := command.SplitArgs(step.Input, types.ToolDelimiter, desc.Arity)
	if err != nil {
		// malformed input is reported by the runner as a soft failure
		return nil
	}

	if escapesWorkDir(cfg.WorkDir, args[0]) {
		return PolicyDeniedError{
			Kind:   PolicyKindPathEscape,
			Reason: fmt.Sprintf("path escapes workdir: workdir=%q path=%q", cfg.WorkDir, args[0]),
		}
	}

	return nil
}

// PolicyDeniedError is a typed error so the agent can branch on it.
type PolicyDeniedError struct {
	Kind   string
	Reason string
}

func (e PolicyDeniedError) Error() string {
	return fmt.Sprintf("policy denied: kind=%s reason=%s", e.Kind, e.Reason)
}

// IsPolicyStop reports whether err is a policy denial and logs it when it is.
func IsPolicyStop(err error, out *zap.SugaredLogger) bool {
	var pe PolicyDeniedError
	if !errors.As(err, &pe) {
		return false
	}
	if out != nil {
		out.Errorf("Policy stop: %s", pe.Error())
	}
	return true
}

func containsTool(xs []types.ToolKind, k types.ToolKind) bool {
	for _, x := range xs {
		if x == k {
			return true
		}
	}
	return false
}

// escapesWorkDir returns true if path, when resolved relative to workdir, is outside workdir.
func escapesWorkDir(workdir, path string) bool {
	wd := filepath.Clean(workdir)
	if abs, err := filepath.Abs(wd); err == nil {
		wd = abs
	}

	var full string
	if filepath.IsAbs(path) {
		full = filepath.Clean(path)
	} else {
		full = filepath.Clean(filepath.Join(wd, path))
	}

	if full == wd {
		return false
	}
	prefix := wd
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return !strings.HasPrefix(full, prefix)
}
