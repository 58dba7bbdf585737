package authclient

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// TokenSource yields the current bearer token. *session.Manager
// satisfies it.
type TokenSource interface {
	Token() string
}

// Invalidator is told to stop treating the user as logged in when the
// remote service rejects the presented token. *session.Manager satisfies
// it through Logout.
type Invalidator interface {
	Logout(ctx context.Context) error
}

// Transport is an http.RoundTripper that attaches the current bearer
// token to every outbound request and reacts to credential rejection.
//
// Pre-request it injects "Authorization: Bearer <token>" when a token is
// present; without one the request goes out unmodified — no blocking, no
// queuing. Post-response a 401 triggers the Invalidator as a side effect
// while the response still reaches the caller unchanged: clearing the
// session and reporting the failed request are deliberately decoupled.
type Transport struct {
	base        http.RoundTripper
	tokens      TokenSource
	invalidator Invalidator
	log         *slog.Logger
}

// TransportOption is a functional option for configuring the Transport.
type TransportOption func(*Transport)

// WithBase sets the underlying round tripper. Defaults to
// http.DefaultTransport.
func WithBase(rt http.RoundTripper) TransportOption {
	return func(t *Transport) {
		if rt != nil {
			t.base = rt
		}
	}
}

// WithTransportLogger sets the transport's logger.
func WithTransportLogger(log *slog.Logger) TransportOption {
	return func(t *Transport) {
		if log != nil {
			t.log = log
		}
	}
}

// NewTransport creates a credential-injecting round tripper. Both tokens
// and invalidator may be nil, in which case the corresponding hook is
// skipped.
func NewTransport(tokens TokenSource, invalidator Invalidator, opts ...TransportOption) *Transport {
	t := &Transport{
		base:        http.DefaultTransport,
		tokens:      tokens,
		invalidator: invalidator,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	req = req.Clone(req.Context())

	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}

	if t.tokens != nil {
		if token := t.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.invalidator != nil {
		// The session stops being authenticated; the caller still sees
		// the original 401 and decides how to present it.
		if err := t.invalidator.Logout(req.Context()); err != nil {
			t.log.WarnContext(req.Context(), "session invalidation failed",
				slog.Any("error", err))
		}
	}

	return resp, nil
}
