// Package guard gates navigation between public, guest-only and
// authenticated destinations based on the current session state.
//
// The routing layer calls Guard.Decide before completing any transition,
// passing the destination Route with its declared Access requirement. The
// guard consults the session (through the small Session interface) and
// answers with a Decision: allow the transition, or redirect it to the
// login or landing destination.
//
// # Recovery
//
// When the in-memory session is unauthenticated but durable storage still
// holds a token — for example right after a process restart — Decide
// triggers the session's AttemptAutoLogin. By default the trigger is
// fire-and-forget and the access check runs against the pre-recovery
// state, matching the behavior of a guard that never blocks navigation:
// the first protected transition may bounce to login even though recovery
// is about to succeed. Embedders that prefer consistency over latency opt
// in to WithBlockingRecovery, which awaits recovery before deciding.
//
// # Usage
//
//	routes := guard.DefaultRoutes()
//	g := guard.New(sessionManager)
//
//	route, _ := routes.ByPath("/dashboard")
//	switch d := g.Decide(ctx, route); d.Action {
//	case guard.ActionAllow:
//	    // render the destination
//	case guard.ActionRedirect:
//	    // navigate to d.Target instead
//	}
package guard
