package backend

import "errors"

// ErrUnauthorized maps the backend's 401/403 responses. Callers turn it into
// a "please log in" notice rather than a generic failure.
var ErrUnauthorized = errors.New("backend rejected the session token")

// ConflictError maps 409: a mutation blocked by existing dependents, e.g.
// deleting a post that still has comments.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string {
	return e.msg
}

// NotFoundError maps 404 responses.
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string {
	return e.msg
}

// ValidationError maps 400/422 and carries the backend-provided message text
// so it can be surfaced to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
