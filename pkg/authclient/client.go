package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/authkit/pkg/session"
)

// Config holds connection settings for the remote authentication service.
type Config struct {
	BaseURL string        `env:"AUTH_API_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"15s"`
}

// Client talks to the remote authentication service. All outbound requests
// go through the credential-injecting Transport, so a token held by the
// session is attached automatically and a server-side rejection clears it.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	tokens      TokenSource
	invalidator Invalidator
	base        http.RoundTripper
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithTokenSource sets where the transport reads the current token from.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithInvalidator sets the session surface notified on credential
// rejection.
func WithInvalidator(invalidator Invalidator) Option {
	return func(c *Client) { c.invalidator = invalidator }
}

// WithBaseTransport sets the round tripper underneath the credential
// transport. Defaults to http.DefaultTransport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.base = rt }
}

// WithLogger sets the client's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the remote authentication service.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := NewTransport(c.tokens, c.invalidator,
		WithBase(c.base),
		WithTransportLogger(c.log),
	)
	c.http = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}

	return c
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", creds, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", ErrMalformedResponse
	}
	return out.Token, nil
}

// Register creates a new account. The response body is unused beyond the
// status code; registration never yields a session.
func (c *Client) Register(ctx context.Context, reg session.Registration) error {
	return c.do(ctx, http.MethodPost, "/register", reg, nil)
}

// Profile fetches the identity behind the current token. The server
// answers 401 for a missing, invalid or expired token.
func (c *Client) Profile(ctx context.Context) (*session.User, error) {
	var out struct {
		User *session.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, ErrMalformedResponse
	}
	return out.User, nil
}

// do performs a JSON request against the remote service. Non-2xx
// responses become *APIError carrying the server's error message;
// transport-level failures wrap ErrRequestFailed.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("authclient: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("authclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}

// decodeAPIError extracts the server's {"error": "..."} payload; a body
// that does not match still yields an APIError with the status code.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
	}

	return apiErr
}
