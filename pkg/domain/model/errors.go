package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for batch operations
var (
	// ErrNoTargets is returned when a batch resolves to zero identities.
	// An empty batch almost always means a bad file path or an empty group,
	// so the run fails fast instead of reporting an empty success.
	ErrNoTargets = goerr.New("batch has no targets")

	// ErrSourceFormat indicates a malformed identity source (unreadable
	// file, missing column)
	ErrSourceFormat = goerr.New("identity source is malformed")

	// ErrSourceLookup indicates the identity source could not be resolved
	// (unknown group, directory query failed)
	ErrSourceLookup = goerr.New("identity source lookup failed")

	// ErrSessionClosed is returned when a backend call is made before
	// Open or after Close
	ErrSessionClosed = goerr.New("session is not open")

	// ErrRunNotFound is returned by history lookups for unknown run IDs
	ErrRunNotFound = goerr.New("run not found")

	// ErrUnknownAction is returned by the action registry for names it
	// has no factory for
	ErrUnknownAction = goerr.New("unknown action")

	// ErrNothingToRetry is returned when a retried run recorded no failures
	ErrNothingToRetry = goerr.New("run has no failed identities to retry")
)
