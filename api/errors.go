package api

import "fmt"

// Error is a structured error the server returned: a non-2xx status with
// a {"message": ...} body. The message is safe to show to the user.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// TransportError covers everything the server did not answer in a
// recognized shape: connection failures, timeouts, malformed bodies.
// Callers map it to a generic user-facing message.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
