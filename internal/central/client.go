// Package central is the HTTP client for the Aruba Central REST API. All
// endpoint wrappers funnel through Client.Do, which handles bearer auth,
// client-side request pacing, and retry on throttled or failed calls.
package central

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// MaxPageSize is the largest page the vendor accepts for paginated GETs.
	MaxPageSize = 1000

	defaultTimeout  = 30 * time.Second
	defaultRPS      = 7
	defaultRetries  = 3
	defaultBackoff  = 2 * time.Second
	jsonContentType = "application/json"
)

// Config holds what Client needs to reach one Central tenant (one workspace).
type Config struct {
	BaseURL string
	Token   string
	// CustomerID is required only by the CaaS endpoints (cp_id query param).
	CustomerID string

	// RPS caps client-side request rate; 0 uses a conservative default.
	RPS float64
	// Retries is the max attempts per request after a 429 or 5xx; 0 uses default.
	Retries int
	Timeout time.Duration

	Logger *slog.Logger
}

// Client talks to one Central tenant. Safe for concurrent use; the batch
// engine shares one Client across its workers so the rate limiter applies
// across the whole fan-out.
type Client struct {
	baseURL    string
	token      string
	customerID string
	httpc      *http.Client
	limiter    *rate.Limiter
	retries    int
	backoff    time.Duration
	log        *slog.Logger
}

// New builds a Client from cfg. BaseURL must include the scheme.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("central: base URL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("central: token is required")
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = defaultRPS
	}
	retries := cfg.Retries
	if retries <= 0 {
		retries = defaultRetries
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	// Fractional RPS truncates to a zero burst, which rejects every
	// request. One waiting request must always be admitted.
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		customerID: cfg.CustomerID,
		httpc:      &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		retries:    retries,
		backoff:    defaultBackoff,
		log:        log,
	}, nil
}

// ReqOption mutates an outgoing request spec before it is sent.
type ReqOption func(*reqOptions)

type reqOptions struct {
	query url.Values
	body  any
}

// WithParam adds one query parameter. Empty values are skipped so wrappers
// can pass optional filters unconditionally.
func WithParam(key, value string) ReqOption {
	return func(o *reqOptions) {
		if value == "" {
			return
		}
		if o.query == nil {
			o.query = url.Values{}
		}
		o.query.Set(key, value)
	}
}

// WithParams adds several query parameters at once.
func WithParams(params map[string]string) ReqOption {
	return func(o *reqOptions) {
		for k, v := range params {
			WithParam(k, v)(o)
		}
	}
}

// WithBody sets a JSON request body.
func WithBody(body any) ReqOption {
	return func(o *reqOptions) { o.body = body }
}

// Do performs one API call. It waits for the rate limiter, sends the request
// with bearer auth, and retries on 429 (honoring Retry-After) and, for
// idempotent methods, on 5xx. HTTP error statuses end up in the returned
// Response; only transport-level problems surface as a non-nil Response.Err.
func (c *Client) Do(ctx context.Context, method, path string, opts ...ReqOption) *Response {
	var o reqOptions
	for _, opt := range opts {
		opt(&o)
	}

	fullURL := c.baseURL + path
	if len(o.query) > 0 {
		fullURL += "?" + o.query.Encode()
	}
	resp := newResponse(method, fullURL)

	var payload []byte
	if o.body != nil {
		b, err := json.Marshal(o.body)
		if err != nil {
			resp.Err = fmt.Errorf("encode request body: %w", err)
			return resp
		}
		payload = b
	}

	for attempt := 1; attempt <= c.retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			resp.Err = err
			return resp
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(payload))
		if err != nil {
			resp.Err = err
			return resp
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", jsonContentType)
		if payload != nil {
			req.Header.Set("Content-Type", jsonContentType)
		}

		start := time.Now()
		httpResp, err := c.httpc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				resp.Err = ctx.Err()
				return resp
			}
			resp.Err = err
			c.log.Warn("request failed", "method", method, "url", fullURL, "attempt", attempt, "err", err)
			if attempt < c.retries && c.sleep(ctx, c.backoffFor(attempt)) != nil {
				return resp
			}
			continue
		}

		body, readErr := io.ReadAll(httpResp.Body)
		httpResp.Body.Close()
		if readErr != nil {
			resp.Err = readErr
			continue
		}

		resp.StatusCode = httpResp.StatusCode
		resp.Body = body
		resp.Err = nil
		resp.RemainingDay = headerInt(httpResp, "X-RateLimit-Remaining-Day")
		resp.RemainingSecond = headerInt(httpResp, "X-RateLimit-Remaining-Second")

		c.log.Debug("api call",
			"method", method,
			"url", fullURL,
			"status", httpResp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remaining_day", resp.RemainingDay)

		if !c.shouldRetry(method, httpResp.StatusCode) || attempt == c.retries {
			return resp
		}

		wait := c.backoffFor(attempt)
		if httpResp.StatusCode == http.StatusTooManyRequests {
			if ra := retryAfter(httpResp); ra > 0 {
				wait = ra
			}
			c.log.Warn("rate limited, backing off", "url", fullURL, "wait", wait, "attempt", attempt)
		}
		if c.sleep(ctx, wait) != nil {
			return resp
		}
	}
	return resp
}

// Get is shorthand for Do with http.MethodGet.
func (c *Client) Get(ctx context.Context, path string, opts ...ReqOption) *Response {
	return c.Do(ctx, http.MethodGet, path, opts...)
}

// Post is shorthand for Do with http.MethodPost.
func (c *Client) Post(ctx context.Context, path string, opts ...ReqOption) *Response {
	return c.Do(ctx, http.MethodPost, path, opts...)
}

// Delete is shorthand for Do with http.MethodDelete.
func (c *Client) Delete(ctx context.Context, path string, opts ...ReqOption) *Response {
	return c.Do(ctx, http.MethodDelete, path, opts...)
}

// GetAll follows limit/offset pagination until a short or empty page, and
// returns one Response whose Body holds the stitched item array. itemsPath is
// the gjson path of the per-page array (e.g. "aps", "sites", "data").
func (c *Client) GetAll(ctx context.Context, path, itemsPath string, opts ...ReqOption) *Response {
	var items []json.RawMessage
	offset := 0
	for {
		page := c.Get(ctx, path, append(opts,
			WithParam("limit", strconv.Itoa(MaxPageSize)),
			WithParam("offset", strconv.Itoa(offset)),
		)...)
		if !page.Ok() {
			if len(items) > 0 {
				// Partial result: keep what we have but surface the failure.
				if page.Err == nil {
					page.Err = fmt.Errorf("pagination stopped at offset %d: %s", offset, page.Error())
				}
				if stitched, err := json.Marshal(items); err == nil {
					page.Body = stitched
				}
			}
			return page
		}
		arr := page.Get(itemsPath).Array()
		for _, item := range arr {
			items = append(items, json.RawMessage(item.Raw))
		}
		if len(arr) < MaxPageSize {
			stitched, err := json.Marshal(items)
			if err != nil {
				page.Err = err
				return page
			}
			page.Body = stitched
			return page
		}
		offset += MaxPageSize
	}
}

// shouldRetry: 429 is always retryable (the request was never admitted);
// 5xx only for idempotent methods.
func (c *Client) shouldRetry(method string, status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	if status < 500 {
		return false
	}
	return method == http.MethodGet || method == http.MethodDelete || method == http.MethodPut
}

func (c *Client) backoffFor(attempt int) time.Duration {
	return c.backoff * time.Duration(attempt)
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func headerInt(resp *http.Response, name string) int {
	v := resp.Header.Get(name)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
