// Package api is the client side of the storefront REST API: a request
// pipeline with explicit before-send and after-receive hooks, and a typed
// endpoint client on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
)

// ErrUnavailable wraps transport failures (connection refused, timeouts).
var ErrUnavailable = errors.New("server unavailable")

const maxResponseBytes = 4 << 20

// BeforeSendHook may mutate an outgoing request. An error aborts the call.
type BeforeSendHook func(*http.Request) error

// AfterReceiveHook observes every response, success or not. The body is
// already buffered and can be read again.
type AfterReceiveHook func(*http.Response) error

// TokenSource reports the current bearer token, "" when there is none.
type TokenSource interface {
	Token() string
}

// Pipeline is the single channel all API requests go through.
type Pipeline struct {
	baseURL string
	http    *http.Client
	before  []BeforeSendHook
	after   []AfterReceiveHook
}

func NewPipeline(baseURL string, httpClient *http.Client) *Pipeline {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Pipeline{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// BeforeSend appends request hooks; they run in registration order.
func (p *Pipeline) BeforeSend(hooks ...BeforeSendHook) *Pipeline {
	p.before = append(p.before, hooks...)
	return p
}

// AfterReceive appends response hooks; they run in registration order.
func (p *Pipeline) AfterReceive(hooks ...AfterReceiveHook) *Pipeline {
	p.after = append(p.after, hooks...)
	return p
}

// Do sends body (JSON-encoded when non-nil) and decodes a 2xx response into
// out when out is non-nil. Non-2xx responses return *ResponseError.
func (p *Pipeline) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	for _, h := range p.before {
		if err := h(req); err != nil {
			return err
		}
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	for _, h := range p.after {
		resp.Body = io.NopCloser(bytes.NewReader(data))
		if err := h(resp); err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newResponseError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// JSONHeaders marks the request as a JSON API call.
func JSONHeaders() BeforeSendHook {
	return func(r *http.Request) error {
		r.Header.Set("Accept", "application/json")
		if r.Body != nil {
			r.Header.Set("Content-Type", "application/json")
		}
		return nil
	}
}

// BearerToken attaches "Authorization: Bearer <token>" when src has a token.
func BearerToken(src TokenSource) BeforeSendHook {
	return func(r *http.Request) error {
		if t := src.Token(); t != "" {
			r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
		}
		return nil
	}
}

// OnUnauthorized calls fn for every 401 response. The caller still receives
// the original *ResponseError.
func OnUnauthorized(fn func(ctx context.Context)) AfterReceiveHook {
	return func(r *http.Response) error {
		if r.StatusCode == http.StatusUnauthorized {
			ctx := context.Background()
			if r.Request != nil {
				ctx = context.WithoutCancel(r.Request.Context())
			}
			fn(ctx)
		}
		return nil
	}
}
