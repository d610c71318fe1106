package react

import (
	"fmt"
	"strings"

	"github.com/kardolus/ue-agent/agent/types"
)

// StopSequence ends a generation before the model invents its own observation.
const StopSequence = "\nObservation:"

const promptTemplate = `You are an expert Unreal Engine development assistant with access to file system tools.

You have access to the following tools:
%s

Tool Names: %s

Use this format:
Question: the input question
Thought: think about what to do
Action: the tool to use (must be one of [%s])
Action Input: the input to the tool
Observation: the result of the action
... (repeat Thought/Action/Observation as needed)
Thought: I now know the final answer
Final Answer: the final response to the user
%s
Question: %s

%s`

func buildPrompt(history, question, scratchpad string) string {
	var descriptions []string
	for _, d := range types.Registry() {
		descriptions = append(descriptions, fmt.Sprintf("%s: %s", d.Kind, d.Usage))
	}
	names := strings.Join(types.ToolNames(), ", ")

	var chat string
	if h := strings.TrimSpace(history); h != "" {
		chat = "\nPrevious conversation:\n" + h + "\n"
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(descriptions, "\n"),
		names,
		names,
		chat,
		question,
		scratchpad,
	)
}

// scratchpadEntry is what one tool round adds to the scratchpad: the model's
// own text, the observation, and the cue for the next thought.
func scratchpadEntry(generated, observation string) string {
	return strings.TrimRight(generated, " \t\r\n") + StopSequence + " " + observation + "\nThought: "
}

func invalidToolObservation(name string) string {
	return fmt.Sprintf("%s is not a valid tool, try one of [%s].", name, strings.Join(types.ToolNames(), ", "))
}
