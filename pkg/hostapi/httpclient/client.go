// Package httpclient is a thin client for the host's local HTTP control
// plane — a request shaper, not a general-purpose HTTP toolkit. The host
// listens on localhost only; everything here assumes a cooperative,
// same-machine counterpart rather than a hostile network.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the host's fixed local listen address.
const DefaultBaseURL = "http://localhost:41595"

// TokenProvider resolves an auth token on demand, e.g. by reading it from
// a host-specific environment the plugin runs inside.
type TokenProvider func(ctx context.Context) (string, error)

// Client talks to the host's HTTP API. The zero value is not usable;
// construct with New.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	explicitToken string
	tokenProvider TokenProvider

	group       singleflight.Group
	mu          sync.Mutex
	cachedToken string
}

// Option configures a Client at construction time.
type Option func(*Client)

func WithBaseURL(url string) Option { return func(c *Client) { c.baseURL = url } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.httpClient = h } }

// WithToken sets an explicit token, taking precedence over every other
// resolution path.
func WithToken(token string) Option { return func(c *Client) { c.explicitToken = token } }

// WithTokenProvider registers a callback consulted when no explicit token
// is set, before falling back to the cached host-fetched token.
func WithTokenProvider(p TokenProvider) Option { return func(c *Client) { c.tokenProvider = p } }

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearTokenCache forces the next host-fetched-token resolution to hit
// /api/application/info again instead of reusing the cached value.
func (c *Client) ClearTokenCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cachedToken = ""
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// cloneValues copies query so do can add the token param without mutating
// a url.Values the caller may still hold a reference to.
func cloneValues(query url.Values) url.Values {
	cloned := make(url.Values, len(query)+1)
	for k, v := range query {
		cloned[k] = append([]string(nil), v...)
	}
	return cloned
}

// Get issues a GET request. query may repeat a key for array-valued
// params (url.Values.Add per element); out receives the unwrapped "data"
// field, or is left untouched if out is nil or the response carries no
// data field.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with body marshaled as JSON (struct fields
// tagged omitempty are stripped when zero/empty, matching the host's own
// tolerance for absent optional fields).
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.resolveToken(ctx)
	if err != nil {
		return fmt.Errorf("httpclient: resolve token: %w", err)
	}

	if query == nil {
		query = url.Values{}
	} else {
		query = cloneValues(query)
	}
	query.Set("token", token)

	target := c.baseURL + path + "?" + query.Encode()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("httpclient: marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("httpclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("httpclient: %s %s: %s: %s", method, path, resp.Status, string(respBody))
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("httpclient: parse response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("httpclient: parse response data: %w", err)
	}
	return nil
}
