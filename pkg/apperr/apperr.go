package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindUpstream Kind = iota
	KindAuth
	KindValidation
	KindNotFound
)

// Error carries a user-facing message, a kind for status mapping, and the
// underlying provider error when there is one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// FromGoogle classifies a Google API error. A 401 means the access token was
// rejected upstream, a 404 means the file id did not resolve; everything else
// stays an upstream failure carrying the provider's message.
func FromGoogle(err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return Upstream("storage provider request failed", err)
	}
	switch gerr.Code {
	case http.StatusUnauthorized:
		return &Error{Kind: KindAuth, Message: "Your Google access token may have expired. Please sign in again.", Err: err}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: "document not found", Err: err}
	default:
		return Upstream(gerr.Message, err)
	}
}

// IsAuth reports whether err classifies as an authentication failure.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindAuth
}

// IsValidation reports whether err classifies as a validation failure.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// IsNotFound reports whether err classifies as a missing resource.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// HTTPStatus maps an error to the status code the client receives.
// Unclassified errors are treated as upstream failures.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
