package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public GitHub API origin
	DefaultBaseURL = "https://api.github.com"

	// DefaultBranch is the branch content writes target when none is given
	DefaultBranch = "main"

	// DefaultTimeout bounds each request at the transport level
	DefaultTimeout = 30 * time.Second

	acceptHeader     = "application/vnd.github.v3+json"
	apiVersionHeader = "2022-11-28"
)

// Options configures a Client. The zero value yields an unauthenticated
// client against the public API with the default timeout.
type Options struct {
	// Token is the bearer token attached to every request. Empty means
	// unauthenticated (rate-limited, public-read-only) mode.
	Token string

	// BaseURL overrides the API origin, for enterprise or mirror endpoints
	BaseURL string

	// DefaultOwner is used when an operation does not specify an owner
	DefaultOwner string

	// Username and Email identify the committer; informational only
	Username string
	Email    string

	// Timeout bounds each request; zero means DefaultTimeout
	Timeout time.Duration

	// RequestsPerMinute enables client-side throttling when positive.
	// Requests are spaced out, never retried.
	RequestsPerMinute int

	// HTTPClient overrides the underlying transport, mainly for tests
	HTTPClient *http.Client
}

// Client is an authenticated GitHub REST API client. All operations funnel
// through Do, which owns header policy and error decoding. Safe for
// concurrent use; SetToken takes effect on subsequent requests only.
type Client struct {
	baseURL      string
	defaultOwner string
	username     string
	email        string
	httpClient   *http.Client
	limiter      *rate.Limiter

	mu    sync.RWMutex
	token string
}

// New creates a GitHub API client with the provided options
func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), opts.RequestsPerMinute)
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		defaultOwner: opts.DefaultOwner,
		username:     opts.Username,
		email:        opts.Email,
		httpClient:   httpClient,
		limiter:      limiter,
		token:        opts.Token,
	}
}

// SetToken replaces the bearer token used for subsequent requests.
// In-flight requests are unaffected. An empty token switches the client
// to unauthenticated mode.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the currently configured bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsConnected reports whether a token is configured. It does not verify
// that the token is valid; use GetAuthStatus for a live check.
func (c *Client) IsConnected() bool {
	return c.Token() != ""
}

// RequestOptions is the options bag for Do
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Do issues a request against the API. Path is resolved relative to the
// configured base URL unless it is already absolute. Caller headers are
// applied first; the standard Accept and Content-Type headers always win so
// the protocol version cannot be overridden. A 2xx response returns the raw
// JSON body (nil for 204); anything else returns an *APIError carrying the
// server's message when the body is parseable JSON.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, newTransportError(err)
		}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	url := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		url = c.baseURL + path
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")
	if req.Header.Get("X-GitHub-Api-Version") == "" {
		req.Header.Set("X-GitHub-Api-Version", apiVersionHeader)
	}
	if token := c.Token(); token != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, errorMessage(data))
	}

	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	return json.RawMessage(data), nil
}

// errorMessage extracts the "message" field from an error body. Unparseable
// bodies yield an empty string so newStatusError falls back to a generic
// description.
func errorMessage(data []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// getJSON issues a GET and decodes the response into v
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	raw, err := c.Do(ctx, path, RequestOptions{Method: http.MethodGet})
	if err != nil {
		return err
	}
	return decode(raw, v)
}

// sendJSON issues a request with a JSON body and decodes the response into v.
// A nil v discards the response (for 204 endpoints).
func (c *Client) sendJSON(ctx context.Context, method, path string, body, v any) error {
	raw, err := c.Do(ctx, path, RequestOptions{Method: method, Body: body})
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return decode(raw, v)
}

func decode(raw json.RawMessage, v any) error {
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resolveOwner substitutes the configured default owner when none is given
func (c *Client) resolveOwner(owner string) (string, error) {
	if owner != "" {
		return owner, nil
	}
	if c.defaultOwner != "" {
		return c.defaultOwner, nil
	}
	return "", fmt.Errorf("owner required: none given and no default owner configured")
}

// GetUser returns the authenticated user's profile. Requires a token; the
// server responds 401 otherwise.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAuthStatus performs a live token check via GetUser. With no token
// configured it short-circuits to a not-connected status without issuing a
// request; the server could only answer 401. Failures are converted into the
// returned status rather than propagated; this is the one operation that
// deliberately swallows errors.
func (c *Client) GetAuthStatus(ctx context.Context) AuthStatus {
	if !c.IsConnected() {
		return AuthStatus{Connected: false, Message: "no token configured"}
	}
	user, err := c.GetUser(ctx)
	if err != nil {
		return AuthStatus{Connected: false, Message: err.Error()}
	}
	return AuthStatus{
		Connected: true,
		Login:     user.Login,
		Message:   fmt.Sprintf("authenticated as %s", user.Login),
	}
}

// GetRateLimit returns the caller's current rate-limit state
func (c *Client) GetRateLimit(ctx context.Context) (*RateLimit, error) {
	var rl RateLimit
	if err := c.getJSON(ctx, "/rate_limit", &rl); err != nil {
		return nil, err
	}
	return &rl, nil
}
