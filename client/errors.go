package client

import "fmt"

// Kind classifies API failures so callers can branch without parsing messages
type Kind int

const (
	// KindValidation means the submitted fields were rejected
	KindValidation Kind = iota + 1
	// KindDuplicateAccount means the email or badge number is already registered
	KindDuplicateAccount
	// KindInvalidCredentials means the email and password did not match an account
	KindInvalidCredentials
	// KindAuthRequired means the stored session is missing, invalid or expired
	KindAuthRequired
	// KindForbidden means the session's role may not perform the operation
	KindForbidden
	// KindNotFound means the referenced record does not exist
	KindNotFound
	// KindNetwork means the server could not be reached
	KindNetwork
	// KindServer means the server failed to process an otherwise valid request
	KindServer
)

// Error is the typed failure returned by all client operations
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code, 0 when the request never reached the server
	Status int
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// IsKind reports whether err is a client Error of the given kind
func IsKind(err error, kind Kind) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == kind
}
