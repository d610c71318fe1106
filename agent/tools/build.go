package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	agenttypes "github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/types"
)

const (
	DefaultBuildTool    = "UnrealBuildTool"
	DefaultBuildTimeout = 300 * time.Second

	// bounds how long output pipes may stay open after the tool is killed
	waitDelay = 2 * time.Second
)

type Builder interface {
	Build(ctx context.Context, projectPath, configuration string) (agenttypes.Result, error)
}

type ExecBuilder struct {
	Tool    string
	Timeout time.Duration
}

func NewExecBuilder(tool string, timeout time.Duration) *ExecBuilder {
	if strings.TrimSpace(tool) == "" {
		tool = DefaultBuildTool
	}
	if timeout <= 0 {
		timeout = DefaultBuildTimeout
	}
	return &ExecBuilder{Tool: tool, Timeout: timeout}
}

// Build regenerates project files for projectPath. The configuration is accepted for
// the tool contract but the invocation only depends on the project path.
func (b *ExecBuilder) Build(ctx context.Context, projectPath, configuration string) (agenttypes.Result, error) {
	const op = "build"

	projectPath = strings.TrimSpace(projectPath)
	if projectPath == "" {
		return agenttypes.Result{}, types.NewError(types.KindParseFailure, op, "", "project path must be non-empty")
	}

	ctx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	start := time.Now()

	cmd := exec.CommandContext(ctx, b.Tool, "-projectfiles", projectPath)
	cmd.WaitDelay = waitDelay

	var outb, errb bytes.Buffer
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	err := cmd.Run()

	res := agenttypes.Result{
		Stdout:   outb.String(),
		Stderr:   errb.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return res, types.WrapError(types.KindTimeout, op, projectPath, fmt.Errorf("%s exceeded %s", b.Tool, b.Timeout))
	}

	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			res.ExitCode = ee.ExitCode()
			return res, nil
		}
		return res, types.WrapError(types.KindGeneric, op, projectPath, err)
	}

	return res, nil
}
