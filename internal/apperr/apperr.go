package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindMissingParameter Kind = iota + 1
	KindInvalidEnumValue
	KindInvalidToken
	KindInvalidArgument
	KindNotFound
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindMissingParameter:
		return "MissingParameter"
	case KindInvalidEnumValue:
		return "InvalidEnumValue"
	case KindInvalidToken:
		return "InvalidToken"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindNotFound:
		return "NotFound"
	case KindUpstream:
		return "UpstreamFailure"
	default:
		return "Unknown"
	}
}

// Status maps a kind to the HTTP status returned to clients.
func (k Kind) Status() int {
	switch k {
	case KindMissingParameter, KindInvalidEnumValue, KindInvalidToken, KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a request-facing failure. Message is safe to show to clients; Err is logged only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return e.Kind.Status() }

func MissingParameter(field string) *Error {
	return &Error{Kind: KindMissingParameter, Message: fmt.Sprintf("No %s parameter provided", field)}
}

func InvalidEnumValue(field, value string) *Error {
	return &Error{Kind: KindInvalidEnumValue, Message: fmt.Sprintf("Invalid %s: %s", field, value)}
}

func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Message: "Invalid next_token", Err: err}
}

func InvalidArgument(message string, err error) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream hides err behind a generic message such as "Failed to search by name".
func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// From returns err as an *Error, wrapping anything unclassified as an upstream failure.
func From(err error, fallback string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Upstream(fallback, err)
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
