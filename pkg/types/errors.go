package types

import "errors"

// Failure taxonomy for remote calls and tool dispatch. Errors returned by
// internal/ncbi wrap exactly one of these sentinels so the tool layer can
// classify with errors.Is without string matching.
var (
	// ErrTransport indicates the HTTP request never completed (connection
	// refused, DNS failure, timeout at the transport level).
	ErrTransport = errors.New("transport failure")

	// ErrRemote indicates the remote service answered with a non-success
	// status or an embedded error payload. The remote message is carried
	// verbatim in the wrapping error.
	ErrRemote = errors.New("remote service error")

	// ErrFormat indicates the response body could not be parsed in the
	// requested shape.
	ErrFormat = errors.New("unparsable response")

	// ErrInvalidDatabase indicates the remote service rejected the database
	// name on a search. No local allow-list is enforced.
	ErrInvalidDatabase = errors.New("invalid database")

	// ErrUnknownDatabase indicates the database name is absent from the
	// local catalog.
	ErrUnknownDatabase = errors.New("unknown database")

	// ErrUnknownResource indicates a resource URI is not one of the
	// documents this server serves.
	ErrUnknownResource = errors.New("unknown resource")

	// ErrNotFound indicates no records resolved for the requested ids.
	ErrNotFound = errors.New("no matching records")

	// ErrPollTimeout indicates BLAST polling exceeded its wait budget.
	ErrPollTimeout = errors.New("polling budget exceeded")

	// ErrBlastFailed indicates the remote BLAST job reached a terminal
	// failure state.
	ErrBlastFailed = errors.New("blast job failed")

	// ErrBlastExpired indicates the remote service purged the BLAST job
	// before results could be retrieved.
	ErrBlastExpired = errors.New("blast job expired")
)
