// Package storage provides the durable key-value store behind the session
// core. The Storage interface is deliberately small — get, set, delete —
// because the session layer only ever persists two independent keys and
// assumes last-write-wins semantics with no multi-key transactions.
//
// Three backends ship out of the box:
//
//   - Memory — a mutex-guarded map for tests and ephemeral processes.
//   - File   — a single JSON document rewritten atomically on every
//     mutation; the natural choice for a client-side process that must
//     survive restarts.
//   - Redis  — a thin wrapper over go-redis for embedders that want the
//     session state shared between processes.
//
// # Usage
//
//	path, _ := storage.DefaultFilePath("myapp")
//	store, err := storage.NewFile(path)
//	if err != nil {
//	    // handle error
//	}
//	defer store.Close()
//
//	if err := store.Set(ctx, "authToken", []byte(token)); err != nil {
//	    // handle error
//	}
//
// Redis configuration follows the usual env-tag convention:
//
//	var cfg storage.RedisConfig
//	config.MustLoad(&cfg)
//	store, err := storage.NewRedisFromConfig(ctx, cfg)
//
// # Errors
//
// Lookups of absent keys return ErrKeyNotFound so callers can distinguish
// "no stored session" from an I/O failure. Connection problems wrap
// sentinel errors (ErrRedisNotReady and friends) via errors.Join.
package storage
