package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")

	// ErrParse marks a malformed leaderboard capture; fatal for the run.
	ErrParse = errors.New("malformed leaderboard capture")
	// ErrNoEntries marks a puzzle day with zero participants; a benign
	// no-op, reported rather than crashed on.
	ErrNoEntries = errors.New("no entries for puzzle day")

	// ErrStoreConnectivity: the store is unreachable. Fatal, never retried.
	ErrStoreConnectivity = errors.New("store unreachable")
	// ErrStoreOperation: the store rejected a read or write. Fatal.
	ErrStoreOperation = errors.New("store operation failed")

	// ErrDelivery: the notification transport failed. Surfaced after store
	// mutations have committed; callers must not roll anything back.
	ErrDelivery = errors.New("notification delivery failed")

	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
