package api

import "errors"

var (
	// ErrUnavailable wraps transport-level failures (DNS, refused
	// connections, dropped sockets). Match with errors.Is.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a non-2xx response from the back office. Message carries the
// best explanation the response offered: the JSON body's "message" field,
// the raw JSON body, or the HTTP status text as a last resort.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
