package command

import (
	"fmt"
	"strings"

	agenttypes "github.com/kardolus/ue-agent/agent/types"
	"github.com/kardolus/ue-agent/agent/tools"
	"github.com/kardolus/ue-agent/types"
)

// Kind names a direct command. The prefix on the input line is Kind + ":".
type Kind string

const (
	ReadFile      Kind = "read_file"
	ListDirectory Kind = "list_directory"
	WriteFile     Kind = "write_file"
	ReplaceInFile Kind = "replace_in_file"
)

// DirectDelimiter separates arguments of direct commands.
const DirectDelimiter = " | "

const opParse = "parse"

type Descriptor struct {
	Kind  Kind
	Usage string
	Arity agenttypes.Arity
}

var registry = []Descriptor{
	{Kind: ReadFile, Usage: "read_file: <path>", Arity: agenttypes.Arity{N: 1}},
	{Kind: ListDirectory, Usage: "list_directory: <path>", Arity: agenttypes.Arity{N: 1}},
	{Kind: WriteFile, Usage: "write_file: <path> | <content>", Arity: agenttypes.Arity{N: 2, GreedyLast: true}},
	{Kind: ReplaceInFile, Usage: "replace_in_file: <path> | <old_text> | <new_text>", Arity: agenttypes.Arity{N: 3}},
}

// Registry returns the direct commands in banner order.
func Registry() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

type Command struct {
	Kind Kind
	Args []string
}

// Parse recognizes a direct command. The bool reports whether a command prefix
// matched at the start of line; when it did but the arguments do not fit, the
// error is a ParseFailure carrying the command's usage string.
func Parse(line string) (Command, bool, error) {
	for _, d := range registry {
		prefix := string(d.Kind) + ":"
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		args, err := SplitArgs(strings.TrimSpace(strings.TrimPrefix(line, prefix)), DirectDelimiter, d.Arity)
		if err != nil {
			return Command{Kind: d.Kind}, true, UsageError(d)
		}
		if args[0] == "" {
			return Command{Kind: d.Kind}, true, UsageError(d)
		}

		return Command{Kind: d.Kind, Args: args}, true, nil
	}

	return Command{}, false, nil
}

// UsageError builds the ParseFailure shown when a command's arguments are malformed.
func UsageError(d Descriptor) error {
	return types.NewError(types.KindParseFailure, opParse, "", "Usage: "+d.Usage)
}

// SplitArgs splits payload on delim and trims every field. A single-argument
// payload is taken whole. With GreedyLast the final field keeps any further
// delimiters; otherwise the field count must match exactly.
func SplitArgs(payload, delim string, arity agenttypes.Arity) ([]string, error) {
	if arity.N <= 0 {
		return nil, types.NewError(types.KindParseFailure, opParse, "", "arity must be positive")
	}

	var parts []string
	if arity.N == 1 || arity.GreedyLast {
		parts = strings.SplitN(payload, delim, arity.N)
	} else {
		parts = strings.Split(payload, delim)
	}

	if len(parts) != arity.N {
		return nil, types.NewError(types.KindParseFailure, opParse, "",
			fmt.Sprintf("expected %d argument(s) separated by %q, got %d", arity.N, delim, len(parts)))
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts, nil
}

// Dispatcher executes parsed direct commands against the file operations.
type Dispatcher struct {
	files tools.Files
}

func NewDispatcher(files tools.Files) *Dispatcher {
	return &Dispatcher{files: files}
}

func (d *Dispatcher) Run(cmd Command) tools.Result {
	switch cmd.Kind {
	case ReadFile:
		return tools.Render(d.files.Read(cmd.Args[0]))
	case ListDirectory:
		return tools.Render(d.files.List(cmd.Args[0]))
	case WriteFile:
		return tools.Render(d.files.Write(cmd.Args[0], cmd.Args[1]))
	case ReplaceInFile:
		return tools.Render(d.files.Replace(cmd.Args[0], cmd.Args[1], cmd.Args[2]))
	default:
		return tools.Failure(types.NewError(types.KindParseFailure, opParse, "", fmt.Sprintf("unknown command: %s", cmd.Kind)))
	}
}
