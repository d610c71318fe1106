package repl

import (
	"errors"

	"github.com/chzyer/readline"
)

// ReadlineReader is the interactive LineReader backed by a terminal.
type ReadlineReader struct {
	rl *readline.Instance
}

func NewReadlineReader() (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineReader{rl: rl}, nil
}

func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// IsTerminal reports whether fd is an interactive terminal.
func IsTerminal(fd int) bool {
	return readline.IsTerminal(fd)
}
