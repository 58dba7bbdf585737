package guard

import (
	"context"
	"log/slog"
)

// Session is the read-and-recover surface the guard needs from the
// session store. *session.Manager satisfies it.
type Session interface {
	// IsAuthenticated reports whether the in-memory session holds a token.
	IsAuthenticated() bool

	// HasStoredToken reports whether durable storage holds a token even
	// though the in-memory session may be empty.
	HasStoredToken(ctx context.Context) bool

	// AttemptAutoLogin restores the session from durable storage and
	// validates it with a profile fetch. Failures are absorbed into a
	// forced logout; the call never reports an error.
	AttemptAutoLogin(ctx context.Context)
}

// Action is the guard's verdict on a route transition.
type Action uint8

const (
	// ActionAllow lets the transition proceed as requested.
	ActionAllow Action = iota
	// ActionRedirect replaces the transition with one to Decision.Target.
	ActionRedirect
)

// Decision is the outcome of evaluating a route transition.
type Decision struct {
	Action Action
	Target RouteName
}

// Allowed reports whether the transition may proceed unchanged.
func (d Decision) Allowed() bool {
	return d.Action == ActionAllow
}

func redirect(to RouteName) Decision {
	return Decision{Action: ActionRedirect, Target: to}
}

// Guard gates every route transition against the current session state.
type Guard struct {
	session          Session
	login            RouteName
	landing          RouteName
	blockingRecovery bool
	log              *slog.Logger
}

// Option is a functional option for configuring the Guard.
type Option func(*Guard)

// WithLoginRoute overrides the destination used for "must authenticate"
// redirects.
func WithLoginRoute(name RouteName) Option {
	return func(g *Guard) { g.login = name }
}

// WithLandingRoute overrides the destination used for "already
// authenticated" redirects and authenticated root resolution.
func WithLandingRoute(name RouteName) Option {
	return func(g *Guard) { g.landing = name }
}

// WithBlockingRecovery makes Decide wait for session recovery to settle
// before evaluating access. The default fires recovery in the background
// and decides against the current state, which means a transition issued
// while recovery is in flight can still bounce to login; the stronger
// contract trades that bounce for added latency on the first transition.
func WithBlockingRecovery() Option {
	return func(g *Guard) { g.blockingRecovery = true }
}

// WithLogger sets the logger used for guard decisions.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a guard over the given session.
func New(session Session, opts ...Option) *Guard {
	g := &Guard{
		session: session,
		login:   RouteLogin,
		landing: RouteDashboard,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide evaluates a route transition and returns the verdict.
//
// When the in-memory session is empty but durable storage holds a token,
// recovery is triggered first — synchronously under WithBlockingRecovery,
// otherwise in the background. The access check then runs in order:
// root resolves eagerly to landing or login, authenticated-only routes
// bounce guests to login, guest-only routes bounce authenticated users
// to landing, and everything else is allowed.
func (g *Guard) Decide(ctx context.Context, route Route) Decision {
	if !g.session.IsAuthenticated() && g.session.HasStoredToken(ctx) {
		if g.blockingRecovery {
			g.session.AttemptAutoLogin(ctx)
		} else {
			go g.session.AttemptAutoLogin(context.WithoutCancel(ctx))
		}
	}

	decision := g.evaluate(route)
	if !decision.Allowed() {
		g.log.DebugContext(ctx, "navigation redirected",
			slog.String("route", string(route.Name)),
			slog.String("access", route.Access.String()),
			slog.String("target", string(decision.Target)),
		)
	}
	return decision
}

func (g *Guard) evaluate(route Route) Decision {
	authenticated := g.session.IsAuthenticated()

	// The root destination never renders itself.
	if route.Name == RouteRoot {
		if authenticated {
			return redirect(g.landing)
		}
		return redirect(g.login)
	}

	switch {
	case route.Access == AccessRequiresAuth && !authenticated:
		return redirect(g.login)
	case route.Access == AccessRequiresGuest && authenticated:
		return redirect(g.landing)
	default:
		return Decision{Action: ActionAllow, Target: route.Name}
	}
}
