// Package session keeps authenticated admin sessions.
//
// A Session is created after a successful login and identified by an opaque
// random token carried in an HTTP-only cookie. Sessions live in a Store:
// MemoryStore for single instances and tests, RedisStore when several
// instances share state.
//
//	mgr := session.NewManager(store, session.WithConfig(cfg))
//	sess, err := mgr.Start(ctx, w, "admin@example.com")
//	...
//	r.With(mgr.RequireAuth("/login")).Get("/", home)
//
// Expiry is sliding: every authenticated request moves ExpiresAt forward by
// the configured TTL once ActivityThreshold has passed since the last touch.
package session
