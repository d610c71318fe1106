package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kardolus/ue-agent/api"
	"github.com/kardolus/ue-agent/api/http"
	"github.com/kardolus/ue-agent/config"
	"github.com/kardolus/ue-agent/types"
)

const (
	ErrEmptyResponse = "empty response"
	opGenerate       = "generate"
	opListModels     = "list models"
)

type Client struct {
	Config config.Config
	caller http.Caller
}

func New(callerFactory http.CallerFactory, cfg config.Config) *Client {
	return &Client{
		Config: cfg,
		caller: callerFactory(cfg),
	}
}

// Generation is a single completed generation with the metadata the endpoint
// reported alongside it.
type Generation struct {
	Text            string
	EvalCount       int
	EvalDuration    time.Duration
	PromptEvalCount int
}

// Throughput returns generated tokens per second. It reports false when the
// endpoint did not supply a token count or a duration.
func (g Generation) Throughput() (float64, bool) {
	if g.EvalCount <= 0 || g.EvalDuration <= 0 {
		return 0, false
	}
	return float64(g.EvalCount) / g.EvalDuration.Seconds(), true
}

// Stats renders the throughput line, or an empty string when unavailable.
func (g Generation) Stats() string {
	tps, ok := g.Throughput()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d tokens in %.2fs = %.1f tokens/sec", g.EvalCount, g.EvalDuration.Seconds(), tps)
}

// Generate sends prompt to the configured model and returns the generated text.
//
// The request is non-streaming. The temperature and stop sequences come from
// the client's Config, so callers that need different sampling settings adjust
// Config before the call.
func (c *Client) Generate(ctx context.Context, prompt string) (Generation, error) {
	body, err := c.createBody(prompt)
	if err != nil {
		return Generation{}, err
	}

	endpoint := c.getEndpoint()

	c.printRequestDebugInfo(endpoint, body)

	raw, err := c.caller.Post(ctx, endpoint, body)
	c.printResponseDebugInfo(raw)

	if err != nil {
		return Generation{}, err
	}

	var res api.GenerateResponse
	if err := c.processResponse(opGenerate, raw, &res); err != nil {
		return Generation{}, err
	}

	return Generation{
		Text:            res.Response,
		EvalCount:       res.EvalCount,
		EvalDuration:    time.Duration(res.EvalDuration),
		PromptEvalCount: res.PromptEvalCount,
	}, nil
}

// Query adapts Generate to the (text, tokens, error) shape the agents consume.
// The token count is prompt plus generated tokens.
func (c *Client) Query(ctx context.Context, prompt string) (string, int, error) {
	gen, err := c.Generate(ctx, prompt)
	if err != nil {
		return "", 0, err
	}
	return gen.Text, gen.PromptEvalCount + gen.EvalCount, nil
}

// ListModels returns the locally installed models, one line each, marking the
// configured one as current.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	endpoint := c.Config.URL + c.Config.APIPath + c.Config.ModelsPath

	c.printRequestDebugInfo(endpoint, nil)

	raw, err := c.caller.Get(ctx, endpoint)
	c.printResponseDebugInfo(raw)

	if err != nil {
		return nil, err
	}

	var response api.ListModelsResponse
	if err := c.processResponse(opListModels, raw, &response); err != nil {
		return nil, err
	}

	var result []string
	for _, model := range response.Models {
		if model.Name != c.Config.Model {
			result = append(result, fmt.Sprintf("- %s", model.Name))
			continue
		}
		result = append(result, fmt.Sprintf("* %s (current)", model.Name))
	}

	return result, nil
}

func (c *Client) createBody(prompt string) ([]byte, error) {
	req := api.GenerateRequest{
		Model:  c.Config.Model,
		Prompt: prompt,
		Stream: false,
	}

	if c.Config.Temperature != 0 || len(c.Config.Stop) > 0 {
		req.Options = &api.Options{
			Temperature: c.Config.Temperature,
			Stop:        c.Config.Stop,
		}
	}

	return json.Marshal(req)
}

func (c *Client) getEndpoint() string {
	return c.Config.URL + c.Config.APIPath + c.Config.GeneratePath
}

func (c *Client) processResponse(op string, raw []byte, v interface{}) error {
	if raw == nil {
		return types.WrapError(types.KindParseFailure, op, "", errors.New(ErrEmptyResponse))
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return types.WrapError(types.KindParseFailure, op, "", fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}
