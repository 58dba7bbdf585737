package session

import "errors"

var (
	// ErrNoStorage indicates no durable storage is configured
	ErrNoStorage = errors.New("session.no_storage")

	// ErrNoClient indicates no API client was bound to the manager
	ErrNoClient = errors.New("session.no_client")

	// ErrPersistFailed indicates durable storage rejected a write-through
	ErrPersistFailed = errors.New("session.persist_failed")

	// ErrSeedFailed indicates the initial restore from durable storage failed
	ErrSeedFailed = errors.New("session.seed_failed")
)
