package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/kardolus/ue-agent/api"
	"github.com/kardolus/ue-agent/config"
	"github.com/kardolus/ue-agent/types"
)

const (
	contentType              = "application/json"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errHTTP                  = "http status %d: %s"
	errHTTPStatus            = "http status: %d"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"
	opPost                   = "post"
	opGet                    = "get"
)

type Caller interface {
	Post(ctx context.Context, url string, body []byte) ([]byte, error)
	Get(ctx context.Context, url string) ([]byte, error)
}

type RestCaller struct {
	client  *http.Client
	config  config.Config
	timeout time.Duration
}

// Ensure RestCaller implements Caller interface
var _ Caller = &RestCaller{}

func New(cfg config.Config) *RestCaller {
	return &RestCaller{
		client:  &http.Client{},
		config:  cfg,
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}
}

type CallerFactory func(cfg config.Config) Caller

func RealCallerFactory(cfg config.Config) Caller {
	return New(cfg)
}

// Post sends body to url and returns the raw response. Every failure is a
// *types.Error so callers can tell timeouts and unreachable endpoints apart.
func (r *RestCaller) Post(ctx context.Context, url string, body []byte) ([]byte, error) {
	return r.do(ctx, http.MethodPost, opPost, url, bytes.NewBuffer(body))
}

func (r *RestCaller) Get(ctx context.Context, url string) ([]byte, error) {
	return r.do(ctx, http.MethodGet, opGet, url, nil)
}

func (r *RestCaller) do(ctx context.Context, method, op, url string, body io.Reader) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, types.WrapError(types.KindGeneric, op, url, fmt.Errorf(errFailedToCreateRequest, err))
	}
	if body != nil {
		req.Header.Set(headerContentType, contentType)
	}
	if r.config.UserAgent != "" {
		req.Header.Set(headerUserAgent, r.config.UserAgent)
	}

	response, err := r.client.Do(req)
	if err != nil {
		return nil, classify(ctx, op, url, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, classify(ctx, op, url, fmt.Errorf(errFailedToRead, err))
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var errorData api.ErrorResponse
		if err := json.Unmarshal(raw, &errorData); err != nil || errorData.Error == "" {
			return raw, types.WrapError(types.KindGeneric, op, url, fmt.Errorf(errHTTPStatus, response.StatusCode))
		}
		return raw, types.WrapError(types.KindGeneric, op, url, fmt.Errorf(errHTTP, response.StatusCode, errorData.Error))
	}

	return raw, nil
}

func classify(ctx context.Context, op, url string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return types.WrapError(types.KindTimeout, op, url, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return types.WrapError(types.KindTimeout, op, url, err)
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return types.WrapError(types.KindConnectionFailure, op, url, err)
	}

	return types.WrapError(types.KindGeneric, op, url, err)
}
