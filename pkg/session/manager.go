package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/authkit/pkg/guard"
	"github.com/dmitrymomot/authkit/pkg/storage"
)

// Client performs the remote authentication calls on behalf of the
// manager. The transport adapter in pkg/authclient provides the stock
// implementation.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds Credentials) (string, error)

	// Register creates a new account. It never yields a session.
	Register(ctx context.Context, reg Registration) error

	// Profile fetches the identity behind the current token.
	Profile(ctx context.Context) (*User, error)
}

// Manager owns the in-memory session and keeps the durable copy
// write-consistent with it. It is the single mutation surface: reads go
// through accessors returning copies, so callers can never observe a
// partially applied mutation.
type Manager struct {
	mu    sync.RWMutex
	token string
	user  *User
	state State

	client    Client
	storage   storage.Storage
	navigator Navigator
	config    Config
	login     guard.RouteName
	landing   guard.RouteName
	log       *slog.Logger
}

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithClient sets the remote API client.
func WithClient(c Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithNavigator sets the navigation surface invoked after login,
// registration and logout.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) {
		if n != nil {
			m.navigator = n
		}
	}
}

// WithConfig sets custom persistence configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithLoginRoute overrides the destination reached after logout and
// registration.
func WithLoginRoute(name guard.RouteName) Option {
	return func(m *Manager) { m.login = name }
}

// WithLandingRoute overrides the destination reached after a successful
// login.
func WithLandingRoute(name guard.RouteName) Option {
	return func(m *Manager) { m.landing = name }
}

// WithLogger sets the manager's logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a Manager over the given durable storage and seeds the
// in-memory session from it before returning, so no navigation decision
// can observe a pre-seed state. A stored token without a cached user is
// restored as provisionally authenticated; a cached user without a token
// is discarded.
func New(ctx context.Context, store storage.Storage, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStorage
	}

	m := &Manager{
		storage:   store,
		navigator: nopNavigator{},
		config:    DefaultConfig(),
		login:     guard.RouteLogin,
		landing:   guard.RouteDashboard,
		log:       slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if err := m.seed(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// SetClient binds the remote API client after construction. The manager
// and the transport adapter reference each other — the adapter reads the
// token from the manager, the manager performs remote calls through the
// adapter's client — so one side has to be bound late.
func (m *Manager) SetClient(c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = c
}

// Token returns the current bearer token, or the empty string when
// unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// CurrentUser returns a copy of the cached user, or nil.
func (m *Manager) CurrentUser() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}

// IsAuthenticated reports whether a token is held. The answer is derived
// from the token on every call rather than stored.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns an immutable view of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{Token: m.token, State: m.state}
	if m.user != nil {
		user := *m.user
		snap.User = &user
	}
	return snap
}

// HasStoredToken reports whether durable storage holds a token, even if
// the in-memory session is empty.
func (m *Manager) HasStoredToken(ctx context.Context) bool {
	data, err := m.storage.Get(ctx, m.config.TokenKey)
	return err == nil && len(data) > 0
}

// Login exchanges credentials for a token, persists it, validates it with
// a profile fetch and navigates to the landing view. Any login failure
// forces a full logout before the error is re-raised, so a failed attempt
// can never leave a half-built session behind. A failed profile fetch
// after a successful login resolves itself through a forced logout and is
// not surfaced here.
func (m *Manager) Login(ctx context.Context, creds Credentials) error {
	client, err := m.requireClient()
	if err != nil {
		return err
	}

	m.setState(StateAuthenticating)

	token, err := client.Login(ctx, creds)
	if err != nil {
		m.log.WarnContext(ctx, "login failed", slog.Any("error", err))
		_ = m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	// The token must be durable before anything else happens; a token
	// held only in memory would violate the write-through contract.
	if err := m.storage.Set(ctx, m.config.TokenKey, []byte(token)); err != nil {
		_ = m.Logout(ctx)
		return errors.Join(ErrPersistFailed, err)
	}

	m.setState(StateAuthenticated)
	m.log.InfoContext(ctx, "login succeeded")

	_ = m.FetchProfile(ctx)

	m.navigator.Navigate(ctx, m.landing)
	return nil
}

// Register creates an account and navigates to the login view so the user
// can sign in manually. It never mutates session state; failures are
// re-raised for the caller to display.
func (m *Manager) Register(ctx context.Context, reg Registration) error {
	client, err := m.requireClient()
	if err != nil {
		return err
	}

	if err := client.Register(ctx, reg); err != nil {
		m.log.WarnContext(ctx, "registration failed", slog.Any("error", err))
		return err
	}

	m.log.InfoContext(ctx, "registration succeeded", slog.String("username", reg.Username))
	m.navigator.Navigate(ctx, m.login)
	return nil
}

// Logout clears the session in memory and in durable storage and
// navigates to the login view. It is idempotent: logging out an already
// unauthenticated session changes nothing but still navigates.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	err := errors.Join(
		m.storage.Delete(ctx, m.config.TokenKey),
		m.storage.Delete(ctx, m.config.UserKey),
	)
	if err != nil {
		err = errors.Join(ErrPersistFailed, err)
		m.log.ErrorContext(ctx, "failed to clear durable session", slog.Any("error", err))
	}

	m.navigator.Navigate(ctx, m.login)
	return err
}

// FetchProfile refreshes the cached user from the remote service. It is a
// no-op without a token. Any failure — rejection, network, persistence —
// resolves into a forced logout: this is the single channel by which an
// invalid or expired token already in memory gets purged. The returned
// error is informational; the session is already in a well-defined state
// when it comes back.
func (m *Manager) FetchProfile(ctx context.Context) error {
	if m.Token() == "" {
		return nil
	}

	client, err := m.requireClient()
	if err != nil {
		return err
	}

	user, err := client.Profile(ctx)
	if err != nil {
		m.log.WarnContext(ctx, "profile fetch failed, forcing logout", slog.Any("error", err))
		_ = m.Logout(ctx)
		return err
	}

	data, err := json.Marshal(user)
	if err != nil {
		_ = m.Logout(ctx)
		return err
	}

	m.mu.Lock()
	userCopy := *user
	m.user = &userCopy
	m.state = StateAuthenticated
	m.mu.Unlock()

	if err := m.storage.Set(ctx, m.config.UserKey, data); err != nil {
		_ = m.Logout(ctx)
		return errors.Join(ErrPersistFailed, err)
	}

	return nil
}

// AttemptAutoLogin reconciles a durable token with an empty in-memory
// session: the token is restored, then validated with a profile fetch.
// Without a stored token it is a no-op. All failures are absorbed — a
// rejected token ends in a clean logout, never in an error to the caller.
func (m *Manager) AttemptAutoLogin(ctx context.Context) {
	if m.IsAuthenticated() {
		return
	}

	if _, err := m.requireClient(); err != nil {
		m.log.WarnContext(ctx, "auto-login skipped", slog.Any("error", err))
		return
	}

	data, err := m.storage.Get(ctx, m.config.TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			m.log.WarnContext(ctx, "failed to read stored token", slog.Any("error", err))
		}
		return
	}

	m.mu.Lock()
	m.token = string(data)
	m.state = StateRecovering
	m.mu.Unlock()

	// A failed fetch has already forced the logout; nothing to add here.
	if err := m.FetchProfile(ctx); err != nil {
		return
	}

	m.log.InfoContext(ctx, "session recovered from storage")
}

// seed restores token and user cache from durable storage. Callers must
// not hold m.mu.
func (m *Manager) seed(ctx context.Context) error {
	data, err := m.storage.Get(ctx, m.config.TokenKey)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return nil
	case err != nil:
		return errors.Join(ErrSeedFailed, err)
	}

	m.mu.Lock()
	m.token = string(data)
	m.state = StateAuthenticated
	m.mu.Unlock()

	userData, err := m.storage.Get(ctx, m.config.UserKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return errors.Join(ErrSeedFailed, err)
		}
		return nil
	}

	var user User
	if err := json.Unmarshal(userData, &user); err != nil {
		// Stale display cache only; the next profile fetch rewrites it.
		m.log.WarnContext(ctx, "discarding unreadable user cache", slog.Any("error", err))
		return nil
	}

	m.mu.Lock()
	m.user = &user
	m.mu.Unlock()

	return nil
}

func (m *Manager) requireClient() (Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.client == nil {
		return nil, ErrNoClient
	}
	return m.client, nil
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}
