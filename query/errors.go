package query

import "errors"

var (
	// ErrUnsupportedOperation is returned by Lookup for an
	// (operation, country) pair absent from the dispatch table.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMissingVariable is returned by Bind when a required request
	// variable has not been supplied.
	ErrMissingVariable = errors.New("missing request variable")

	// ErrNoPricesForSegment signals the backend's "no prices published
	// for this segment" response on price queries. Callers normalize it
	// to an empty result rather than surfacing it.
	ErrNoPricesForSegment = errors.New("no prices for segment")
)

// AuthError is returned when the backend rejects credentials or an
// authenticated call is not authorised.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "not authorised"
	}
	return "not authorised: " + e.Message
}

// RequestError carries an application-level backend error that is not
// auth related, or a malformed response shape.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}
