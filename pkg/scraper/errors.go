package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// ErrorType categorizes different types of scraper errors
type ErrorType string

const (
	ErrorTypeServiceUnavailable ErrorType = "service_unavailable"
	ErrorTypeTimeout            ErrorType = "timeout"
	ErrorTypeNetwork            ErrorType = "network"
	ErrorTypeExtraction         ErrorType = "extraction"
	ErrorTypeInvalidURL         ErrorType = "invalid_url"
	ErrorTypeInvalidResponse    ErrorType = "invalid_response"
	ErrorTypeCancelled          ErrorType = "cancelled"
)

// ScraperError represents a structured error from the scraper service
type ScraperError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ScraperError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *ScraperError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns true if the error is likely to succeed on retry
func (e *ScraperError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeServiceUnavailable, ErrorTypeNetwork, ErrorTypeTimeout:
		return true
	default:
		return false
	}
}

// UserMessage returns a user-friendly error message. Messages reported by
// the service itself (no local cause) are passed through.
func (e *ScraperError) UserMessage() string {
	switch e.Type {
	case ErrorTypeServiceUnavailable:
		return "Scraper service unavailable. Please check if the service is running."
	case ErrorTypeTimeout:
		return "Scraping timed out. The page may be slow to load or the service may be busy."
	case ErrorTypeNetwork:
		if e.Cause == nil && e.Message != "" {
			return fmt.Sprintf("Source site unreachable: %s", e.Message)
		}
		return "Network error occurred while scraping. Please check your connection and try again."
	case ErrorTypeExtraction:
		return fmt.Sprintf("Failed to extract device data: %s", e.Message)
	case ErrorTypeInvalidURL:
		return fmt.Sprintf("Invalid URL: %s", e.Message)
	case ErrorTypeInvalidResponse:
		return "Received invalid response from scraper service. Please try again."
	case ErrorTypeCancelled:
		return "Scraping was cancelled."
	default:
		return e.Message
	}
}

func newServiceUnavailableError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeServiceUnavailable,
		Message: "Service not available",
		Cause:   cause,
	}
}

func newTimeoutError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeTimeout,
		Message: "Request timed out",
		Cause:   cause,
	}
}

func newNetworkError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeNetwork,
		Message: "Network error",
		Cause:   cause,
	}
}

func newInvalidResponseError(message string, cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeInvalidResponse,
		Message: message,
		Cause:   cause,
	}
}

func newCancelledError(cause error) *ScraperError {
	return &ScraperError{
		Type:    ErrorTypeCancelled,
		Message: "Operation cancelled",
		Cause:   cause,
	}
}

// classifyTransportError maps a failed round trip to a ScraperError.
func classifyTransportError(ctx context.Context, err error) *ScraperError {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return newCancelledError(err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return newTimeoutError(err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return newServiceUnavailableError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(err)
	}
	return newNetworkError(err)
}

// classifyStatus maps a non-200 service response to a ScraperError, keeping
// the service's own error message.
func classifyStatus(status int, message string) *ScraperError {
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusBadRequest:
		return &ScraperError{Type: ErrorTypeInvalidURL, Message: message}
	case http.StatusUnprocessableEntity:
		return &ScraperError{Type: ErrorTypeExtraction, Message: message}
	case http.StatusBadGateway:
		return &ScraperError{Type: ErrorTypeNetwork, Message: message}
	case http.StatusServiceUnavailable:
		return &ScraperError{Type: ErrorTypeServiceUnavailable, Message: message}
	case http.StatusGatewayTimeout:
		return &ScraperError{Type: ErrorTypeTimeout, Message: message}
	default:
		return newInvalidResponseError(fmt.Sprintf("status %d: %s", status, message), nil)
	}
}

// IsErrorType reports whether err is a ScraperError of type t.
func IsErrorType(err error, t ErrorType) bool {
	var se *ScraperError
	return errors.As(err, &se) && se.Type == t
}
