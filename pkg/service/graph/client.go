// Package graph is a minimal Microsoft Graph client for the calls sweep
// makes: mailbox settings and group membership. Authentication is the
// OAuth2 client credentials flow with an app registration.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/shiftward/sweep/pkg/domain/model"
)

const defaultBaseURL = "https://graph.microsoft.com/v1.0"

// Config identifies the app registration used for app-only Graph access
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Client talks to Microsoft Graph. It implements interfaces.SessionManager:
// Open acquires a token so bad credentials fail before the first identity
// is touched, Close releases idle connections.
type Client struct {
	config   Config
	baseURL  string
	tokenURL string

	mu   sync.Mutex
	http *http.Client
	open bool
}

// Option adjusts a Client, mostly for tests
type Option func(*Client)

// WithBaseURL points the client at a different Graph endpoint
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient injects a ready HTTP client and skips the token exchange
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a Graph client for the given app registration
func New(config Config, opts ...Option) *Client {
	c := &Client{
		config:   config,
		baseURL:  defaultBaseURL,
		tokenURL: fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", config.TenantID),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open performs the client credentials exchange. Opening an already-open
// client is a no-op.
func (c *Client) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}

	if c.http == nil {
		if c.config.TenantID == "" || c.config.ClientID == "" || c.config.ClientSecret == "" {
			return goerr.New("graph credentials are not configured")
		}
		cc := &clientcredentials.Config{
			ClientID:     c.config.ClientID,
			ClientSecret: c.config.ClientSecret,
			TokenURL:     c.tokenURL,
			Scopes:       []string{"https://graph.microsoft.com/.default"},
		}
		if _, err := cc.Token(ctx); err != nil {
			return goerr.Wrap(err, "failed to acquire graph token", goerr.V("tenantID", c.config.TenantID))
		}
		c.http = cc.Client(ctx)
	}

	c.open = true
	ctxlog.From(ctx).Debug("graph session opened", "tenantID", c.config.TenantID)
	return nil
}

// Close releases idle connections. Closing twice is harmless.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = false
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

func (c *Client) client() (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return nil, goerr.Wrap(model.ErrSessionClosed, "graph session is not open")
	}
	return c.http, nil
}

// get fetches url and decodes the JSON response into out. The url may be
// a path relative to the base URL or an absolute @odata.nextLink.
func (c *Client) get(ctx context.Context, url string, out any) error {
	httpClient, err := c.client()
	if err != nil {
		return err
	}
	if strings.HasPrefix(url, "/") {
		url = c.baseURL + url
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build graph request")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "graph request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode graph response", goerr.V("url", url))
	}
	return nil
}

// patch sends a JSON body to path. Graph answers mailbox settings updates
// with 200 and the merged object, other resources with 204.
func (c *Client) patch(ctx context.Context, path string, body any) error {
	httpClient, err := c.client()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to encode graph request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, strings.NewReader(string(raw)))
	if err != nil {
		return goerr.Wrap(err, "failed to build graph request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "graph request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return apiError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// apiError turns a Graph error payload into a goerr with the service's
// code and message attached
func apiError(resp *http.Response) error {
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &payload)

	return goerr.New("graph api error",
		goerr.V("status", resp.StatusCode),
		goerr.V("code", payload.Error.Code),
		goerr.V("message", payload.Error.Message),
	)
}
