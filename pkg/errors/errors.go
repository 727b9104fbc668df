package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeBotError   = "BOT_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeFetch      = "FETCH_ERROR"
	CodeNetwork    = "NETWORK_ERROR"
	CodeNoContent  = "NO_CONTENT_ERROR"
)

type BotError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

func NewBotError(message, code string, statusCode int, context map[string]any) *BotError {
	return &BotError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *BotError) WithCause(cause error) *BotError {
	e.Cause = cause
	return e
}

type APIError struct {
	*BotError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*BotError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// FetchError reports a non-success HTTP status from the content source.
type FetchError struct {
	*BotError
	URL string
}

func NewFetchError(statusCode int, url string) *FetchError {
	return &FetchError{
		BotError: &BotError{
			Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
			Code:       CodeFetch,
			StatusCode: statusCode,
			Context: map[string]any{
				"url": url,
			},
		},
		URL: url,
	}
}

// NetworkError reports a transport-level failure (timeout, DNS, reset) before
// any HTTP status was received.
type NetworkError struct {
	*BotError
	URL string
}

func NewNetworkError(url string, cause error) *NetworkError {
	return &NetworkError{
		BotError: &BotError{
			Message:    "request failed",
			Code:       CodeNetwork,
			StatusCode: 0,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

// NoContentError means every extraction stage came up empty. It is surfaced
// explicitly so an empty page is never mistaken for a valid reading.
type NoContentError struct {
	*BotError
	URL string
}

func NewNoContentError(url string) *NoContentError {
	return &NoContentError{
		BotError: &BotError{
			Message:    "no usable content extracted",
			Code:       CodeNoContent,
			StatusCode: 0,
			Context: map[string]any{
				"url": url,
			},
		},
		URL: url,
	}
}

func IsNoContent(err error) bool {
	var nc *NoContentError
	return stderrors.As(err, &nc)
}

func AsFetch(err error) (*FetchError, bool) {
	var fe *FetchError
	ok := stderrors.As(err, &fe)
	return fe, ok
}

func AsNetwork(err error) (*NetworkError, bool) {
	var ne *NetworkError
	ok := stderrors.As(err, &ne)
	return ne, ok
}
