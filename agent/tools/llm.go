package tools

import (
	"context"

	apiclient "github.com/kardolus/ue-agent/api/client"
)

type LLM interface {
	Complete(ctx context.Context, prompt string) (string, int, error)
}

// ClientLLM runs the shared inference client with the agent's own model,
// temperature and stop sequences, leaving the client's settings as it found them.
type ClientLLM struct {
	c           *apiclient.Client
	model       string
	temperature float64
	stop        []string
}

func NewClientLLM(c *apiclient.Client, model string, temperature float64, stop ...string) *ClientLLM {
	return &ClientLLM{c: c, model: model, temperature: temperature, stop: stop}
}

func (l *ClientLLM) Complete(ctx context.Context, prompt string) (string, int, error) {
	// save
	prevModel := l.c.Config.Model
	prevTemp := l.c.Config.Temperature
	prevStop := l.c.Config.Stop

	// set for agent internals
	if l.model != "" {
		l.c.Config.Model = l.model
	}
	l.c.Config.Temperature = l.temperature
	l.c.Config.Stop = l.stop

	// restore no matter what
	defer func() {
		l.c.Config.Model = prevModel
		l.c.Config.Temperature = prevTemp
		l.c.Config.Stop = prevStop
	}()

	out, tokens, err := l.c.Query(ctx, prompt)
	if err != nil {
		return "", 0, err
	}
	return out, tokens, nil
}
