package react

import (
	"fmt"
	"strings"

	"github.com/kardolus/ue-agent/types"
)

const (
	thoughtPrefix     = "Thought:"
	actionPrefix      = "Action:"
	actionInputPrefix = "Action Input:"
	finalAnswerPrefix = "Final Answer:"
	observationPrefix = "Observation:"

	opParse = "parse"
)

// decision is one parsed model turn: either an action or a final answer.
type decision struct {
	Thought string
	Action  string
	Input   string
	Answer  string
	Final   bool
}

// cutAtObservation drops anything from the first Observation line on; the
// model must not write its own observations.
func cutAtObservation(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), observationPrefix) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// parseOutput reads the ReAct grammar:
//
//	[Thought: <text>]
//	Action: <tool name>
//	Action Input: <input, may span lines>
//
// or
//
//	[Thought: <text>]
//	Final Answer: <answer, may span lines>
//
// A marker may also follow a Thought or an Action on the same line, as in
// "Thought: done. Final Answer: 12 files". An output containing both forms is
// rejected.
func parseOutput(text string) (decision, error) {
	var (
		d           decision
		thought     []string
		inputLines  []string
		answerLines []string
		haveAction  bool
		haveInput   bool
		inInput     bool
		inAnswer    bool
	)

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if !inAnswer && !inInput {
			if head, tail, ok := splitInline(trimmed); ok {
				lines = append(lines[:i+1], append([]string{tail}, lines[i+1:]...)...)
				line, trimmed = head, head
			}
		}

		switch {
		case strings.HasPrefix(trimmed, finalAnswerPrefix):
			d.Final = true
			inAnswer, inInput = true, false
			answerLines = append(answerLines, strings.TrimPrefix(trimmed, finalAnswerPrefix))

		case !inAnswer && !haveAction && strings.HasPrefix(trimmed, actionPrefix):
			haveAction = true
			d.Action = strings.TrimSpace(strings.TrimPrefix(trimmed, actionPrefix))

		case !inAnswer && haveAction && !haveInput && strings.HasPrefix(trimmed, actionInputPrefix):
			haveInput, inInput = true, true
			inputLines = append(inputLines, strings.TrimPrefix(trimmed, actionInputPrefix))

		case inAnswer:
			answerLines = append(answerLines, line)

		case inInput:
			inputLines = append(inputLines, line)

		case !haveAction:
			thought = append(thought, strings.TrimPrefix(trimmed, thoughtPrefix))
		}
	}

	d.Thought = strings.TrimSpace(strings.Join(thought, "\n"))

	if d.Final && haveAction {
		return decision{}, types.NewError(types.KindParseFailure, opParse, "",
			"Parsing LLM output produced both a final answer and a parse-able action")
	}

	if d.Final {
		d.Answer = strings.TrimSpace(strings.Join(answerLines, "\n"))
		return d, nil
	}

	if !haveAction {
		return decision{}, types.NewError(types.KindParseFailure, opParse, "",
			fmt.Sprintf("Invalid Format: Missing '%s' after '%s'", actionPrefix, thoughtPrefix))
	}
	if d.Action == "" {
		return decision{}, types.NewError(types.KindParseFailure, opParse, "",
			fmt.Sprintf("Invalid Format: Missing tool name after '%s'", actionPrefix))
	}
	if !haveInput {
		return decision{}, types.NewError(types.KindParseFailure, opParse, "",
			fmt.Sprintf("Invalid Format: Missing '%s' after '%s'", actionInputPrefix, actionPrefix))
	}

	d.Input = cleanInput(strings.Join(inputLines, "\n"))
	return d, nil
}

// splitInline cuts a Thought or Action line at the first marker after its own.
func splitInline(line string) (string, string, bool) {
	var head string
	switch {
	case strings.HasPrefix(line, thoughtPrefix):
		head = thoughtPrefix
	case strings.HasPrefix(line, actionInputPrefix):
		return "", "", false
	case strings.HasPrefix(line, actionPrefix):
		head = actionPrefix
	default:
		return "", "", false
	}

	rest := line[len(head):]
	cut := -1
	for _, marker := range []string{finalAnswerPrefix, actionInputPrefix, actionPrefix} {
		if i := strings.Index(rest, marker); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return "", "", false
	}
	return head + rest[:cut], rest[cut:], true
}

func cleanInput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' && s[len(s)-1] == '"' || s[0] == '\'' && s[len(s)-1] == '\'') {
		s = s[1 : len(s)-1]
	}
	return s
}
