package types

import (
	"time"
)

// ToolKind is the closed set of tools the reasoning loop may select.
type ToolKind string

const (
	ToolReadFile       ToolKind = "ReadFile"
	ToolWriteFile      ToolKind = "WriteFile"
	ToolListDirectory  ToolKind = "ListDirectory"
	ToolSearchFiles    ToolKind = "SearchFiles"
	ToolAnalyzeProject ToolKind = "AnalyzeProject"
	ToolBuildProject   ToolKind = "BuildProject"
)

// ToolDelimiter separates multi-argument tool inputs, e.g. "path|||content".
const ToolDelimiter = "|||"

type Arity struct {
	N          int
	GreedyLast bool // last argument keeps any further delimiters
}

type ToolDescriptor struct {
	Kind     ToolKind
	Usage    string
	Arity    Arity
	Mutating bool
}

var registry = []ToolDescriptor{
	{
		Kind:  ToolReadFile,
		Usage: "Reads the contents of a file, or lists a folder. Input: file path",
		Arity: Arity{N: 1},
	},
	{
		Kind:     ToolWriteFile,
		Usage:    "Writes content to a file, creating parent folders. Input format: 'path|||content'",
		Arity:    Arity{N: 2, GreedyLast: true},
		Mutating: true,
	},
	{
		Kind:  ToolListDirectory,
		Usage: "Lists files and folders in a directory. Input: directory path",
		Arity: Arity{N: 1},
	},
	{
		Kind:  ToolSearchFiles,
		Usage: "Searches recursively for files matching a glob pattern. Input format: 'directory|||pattern' (e.g., 'C:/Project|||*.cpp')",
		Arity: Arity{N: 2, GreedyLast: true},
	},
	{
		Kind:  ToolAnalyzeProject,
		Usage: "Analyzes an Unreal Engine project structure. Input: project root path",
		Arity: Arity{N: 1},
	},
	{
		Kind:     ToolBuildProject,
		Usage:    "Builds an Unreal Engine project. Input format: 'project_path|||config' (e.g., 'Development' or 'Shipping')",
		Arity:    Arity{N: 2, GreedyLast: true},
		Mutating: true,
	},
}

// Registry returns a copy of the tool table in prompt order.
func Registry() []ToolDescriptor {
	out := make([]ToolDescriptor, len(registry))
	copy(out, registry)
	return out
}

// LookupTool matches name exactly (case-sensitive) against the registry.
func LookupTool(name string) (ToolDescriptor, bool) {
	for _, d := range registry {
		if string(d.Kind) == name {
			return d, true
		}
	}
	return ToolDescriptor{}, false
}

func ToolNames() []string {
	names := make([]string, 0, len(registry))
	for _, d := range registry {
		names = append(names, string(d.Kind))
	}
	return names
}

type Config struct {
	DryRun  bool
	WorkDir string
}

type Step struct {
	Tool        ToolKind
	Input       string
	Description string
}

type OutcomeKind string

const (
	OutcomeOK     OutcomeKind = "ok"
	OutcomeError  OutcomeKind = "error"
	OutcomeDryRun OutcomeKind = "dry_run"
)

type StepResult struct {
	Step       Step
	Outcome    OutcomeKind
	Transcript string // human-readable log line(s) for the run transcript
	Duration   time.Duration
	Output     string // observation fed back to the model
}

// Result is the raw outcome of an external process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

type StopReason string

const (
	StopFinalAnswer   StopReason = "final_answer"
	StopMaxIterations StopReason = "max_iterations"
	StopGenerated     StopReason = "generated"
)

// LoopState is the state of one reasoning loop run. Iteration only grows and is
// bounded by the iteration budget; Done is set once a StopReason is known.
type LoopState struct {
	Iteration  int
	Transcript string
	Done       bool
	Reason     StopReason
}

// Outcome is what an agent hands back to the REPL for one user request.
type Outcome struct {
	Answer     string
	Iterations int
	Reason     StopReason
	Stats      string
	Tokens     int
}
