package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// resolveToken applies the precedence chain: explicit token, then a
// caller-supplied provider, then the cached host-fetched token.
// Concurrent resolvers share a single in-flight fetch via singleflight —
// the host-fetched path is the only one worth de-duplicating, since the
// other two are already synchronous and cheap.
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if c.explicitToken != "" {
		return c.explicitToken, nil
	}
	if c.tokenProvider != nil {
		return c.tokenProvider(ctx)
	}

	c.mu.Lock()
	cached := c.cachedToken
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	v, err, _ := c.group.Do("host-token", func() (any, error) {
		c.mu.Lock()
		cached := c.cachedToken
		c.mu.Unlock()
		if cached != "" {
			return cached, nil
		}
		token, err := c.fetchTokenFromEndpoint(ctx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.cachedToken = token
		c.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

type applicationInfoResponse struct {
	Preferences struct {
		Developer struct {
			APIToken string `json:"apiToken"`
		} `json:"developer"`
	} `json:"preferences"`
}

// fetchTokenFromEndpoint calls /api/application/info directly, bypassing
// resolveToken, so it cannot recurse into its own token resolution.
func (c *Client) fetchTokenFromEndpoint(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/application/info", nil)
	if err != nil {
		return "", fmt.Errorf("httpclient: build token request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpclient: fetch token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("httpclient: read token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("httpclient: fetch token: %s: %s", resp.Status, string(body))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fmt.Errorf("httpclient: parse token envelope: %w", err)
	}
	var info applicationInfoResponse
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return "", fmt.Errorf("httpclient: parse application info: %w", err)
	}
	if info.Preferences.Developer.APIToken == "" {
		return "", fmt.Errorf("httpclient: host reported no developer api token")
	}
	return info.Preferences.Developer.APIToken, nil
}
