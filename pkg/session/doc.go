// Package session owns the client-side authentication session: an opaque
// bearer token plus a cached user identity, kept write-consistent with a
// durable key-value store so the session survives process restarts.
//
// The Manager is the single mutation surface. All reads go through
// accessors returning copies (or a whole Snapshot), so no caller can
// observe a half-applied mutation. Two invariants hold at every point in
// time:
//
//   - a cached user is never held without a token; operations that drop
//     the token drop the user in the same step, and
//   - every successful login, profile refresh and logout writes through
//     to durable storage before the operation completes.
//
// # Lifecycle
//
// A fresh Manager seeds itself synchronously from durable storage: a
// stored token makes the session provisionally authenticated until the
// next profile fetch confirms or rejects it. Login stores and persists
// the token, then validates it with a profile fetch; registration never
// creates a session; logout wipes memory and storage unconditionally and
// is idempotent. AttemptAutoLogin is the recovery path used by the
// navigation guard when durable state and memory state disagree.
//
// Failures follow a strict policy: login and registration errors are
// re-raised untouched for the rendering layer to display, while profile
// fetch and auto-login failures are absorbed into a forced logout — the
// only channel by which an invalid or expired token gets purged. The
// token itself is treated as opaque; expiry is discovered exclusively
// through a server-side rejection.
//
// # Wiring
//
// The manager and the transport adapter in pkg/authclient reference each
// other, so the client is bound after construction:
//
//	store, _ := storage.NewFile(path)
//	mgr, err := session.New(ctx, store)
//	if err != nil {
//	    // handle error
//	}
//
//	api := authclient.New(cfg,
//	    authclient.WithTokenSource(mgr),
//	    authclient.WithInvalidator(mgr),
//	)
//	mgr.SetClient(api)
package session
