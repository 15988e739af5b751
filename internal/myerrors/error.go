package myerrors

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindBadRequest
	KindForbidden
	KindPermissionDenied
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindForbidden:
		return "forbidden"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "unknown"
	}
}

// RequestError is an error caused by the request itself rather than by the
// server. The API layer turns its Kind into a status code.
type RequestError struct {
	Kind    Kind
	Message string
	Err     error
}

func (r *RequestError) Error() string {
	if r.Err != nil && r.Message == "" {
		return r.Err.Error()
	}
	return r.Message
}

func (r *RequestError) Unwrap() error {
	return r.Err
}

func Validation(message string) *RequestError {
	return &RequestError{Kind: KindValidation, Message: message}
}

func NotFound(message string) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: message}
}

func BadRequest(message string) *RequestError {
	return &RequestError{Kind: KindBadRequest, Message: message}
}

func Forbidden(message string) *RequestError {
	return &RequestError{Kind: KindForbidden, Message: message}
}

func PermissionDenied(message string) *RequestError {
	return &RequestError{Kind: KindPermissionDenied, Message: message}
}

// Wrap keeps err reachable through errors.Is/As while reporting message.
func Wrap(kind Kind, message string, err error) *RequestError {
	return &RequestError{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first RequestError in err's chain.
func KindOf(err error) Kind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return KindUnknown
}
