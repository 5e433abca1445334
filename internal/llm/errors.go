package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a generation failure for callers that need to
// react differently per failure class.
type ErrorKind string

const (
	KindMissingCredential ErrorKind = "missing_credential"
	KindInvalidInput      ErrorKind = "invalid_input"
	KindTransport         ErrorKind = "transport_error"
	KindAPI               ErrorKind = "api_error"
	KindMalformedPayload  ErrorKind = "malformed_payload"
	KindUnknown           ErrorKind = "unknown"
)

// ErrMissingCredential indicates no API key is configured. It is returned
// before any network round-trip.
var ErrMissingCredential = errors.New("API key is not configured")

// ErrInvalidInput indicates the caller supplied an unusable request, such
// as empty text or out-of-range generation parameters.
var ErrInvalidInput = errors.New("invalid input")

// TransportError indicates the endpoint could not be reached or the
// request timed out.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// defaultAPIMessage is used when a non-success response carries no message.
const defaultAPIMessage = "generation API error"

// APIError indicates the endpoint answered with a non-success status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// MalformedPayloadError indicates the response, or the text the model
// generated, could not be decoded into the expected structure.
type MalformedPayloadError struct {
	Content string
	Err     error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// KindOf maps an error returned by this package (or wrapping one) to its
// ErrorKind. A nil error has an empty kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var (
		transport *TransportError
		api       *APIError
		malformed *MalformedPayloadError
	)
	switch {
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.As(err, &api):
		return KindAPI
	case errors.As(err, &malformed):
		return KindMalformedPayload
	case errors.As(err, &transport):
		return KindTransport
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindTransport
	}
	return KindUnknown
}

// MessageOf returns the user-facing message for err. API errors yield the
// server-reported message alone.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var api *APIError
	if errors.As(err, &api) {
		return api.Message
	}
	return err.Error()
}
