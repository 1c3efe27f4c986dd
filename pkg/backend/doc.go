// Package backend wraps the blob-storage service behind a small capability
// interface. Handlers receive an optional Session; when it is present a
// client can be constructed, when it is absent no backend calls are
// possible. Every backend-originated failure surfaces as an *APIError
// carrying the service's error code, so callers classify by ordinary
// branching rather than by unwinding.
package backend
