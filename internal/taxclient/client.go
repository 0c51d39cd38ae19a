// Package taxclient posts computation requests to the remote tax service.
package taxclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"tax-simulation/internal/model"
)

const computePath = "/api/v1.0/TaxComputer"

const defaultTimeout = 10 * time.Second

// ErrTransport wraps every failure to obtain a response.
var ErrTransport = errors.New("tax service transport")

// Response is the raw status and body returned by the service.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client struct {
	url     string
	timeout time.Duration
	http    *fasthttp.Client
}

type Option func(*Client)

// WithDial replaces the dialer, mostly for in-memory listeners in tests.
func WithDial(dial fasthttp.DialFunc) Option {
	return func(c *Client) {
		c.http.Dial = dial
	}
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		url:     strings.TrimRight(baseURL, "/") + computePath,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "tax-simulation",
			MaxConnsPerHost:     100,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) URL() string {
	return c.url
}

type result struct {
	resp Response
	err  error
}

// Compute posts req and returns whatever status the service answered with.
// Non-2xx statuses are not errors here; classification happens upstream.
// Cancelling ctx abandons the wait immediately.
func (c *Client) Compute(ctx context.Context, req model.TaxComputationRequest) (Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode request: %w", err)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	done := make(chan result, 1)
	go func() {
		httpReq := fasthttp.AcquireRequest()
		httpResp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(httpReq)
		defer fasthttp.ReleaseResponse(httpResp)

		httpReq.SetRequestURI(c.url)
		httpReq.Header.SetMethod(fasthttp.MethodPost)
		httpReq.Header.SetContentType("application/json")
		httpReq.Header.Set(fasthttp.HeaderAccept, "application/json")
		httpReq.SetBodyRaw(payload)

		if err := c.http.DoDeadline(httpReq, httpResp, deadline); err != nil {
			done <- result{err: fmt.Errorf("%w: post %s: %v", ErrTransport, c.url, err)}
			return
		}
		body := append([]byte(nil), httpResp.Body()...)
		done <- result{resp: Response{StatusCode: httpResp.StatusCode(), Body: body}}
	}()

	select {
	case <-ctx.Done():
		return Response{}, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	case r := <-done:
		return r.resp, r.err
	}
}
