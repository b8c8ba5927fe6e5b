package ipc

import "errors"

// Error categories for the transport layer. Callers match with errors.Is.
var (
	// ErrConnection covers endpoint resolution and dial failures. Fatal at
	// startup; there is no retry at this layer.
	ErrConnection = errors.New("ipc: connection error")

	// ErrProtocol covers magic mismatches and streams truncated inside a
	// frame. The connection is unusable afterwards; reconnect to recover.
	ErrProtocol = errors.New("ipc: protocol error")

	// ErrDecode covers payloads that are not the JSON shape a reply
	// requires. The connection stays usable for the next request.
	ErrDecode = errors.New("ipc: decode error")

	// ErrValidation covers caller arguments rejected before any I/O.
	ErrValidation = errors.New("ipc: validation error")

	// ErrSubscription is returned when the manager refuses a subscribe
	// request.
	ErrSubscription = errors.New("ipc: subscription refused")
)
