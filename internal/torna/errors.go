package torna

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed call into the category that selects its
// user-facing message.
type Kind int

const (
	KindUnexpected Kind = iota
	KindConfig
	KindNotFound
	KindForbidden
	KindRateLimited
	KindStatus
	KindTimeout
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate_limited"
	case KindStatus:
		return "status"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	}
	return "unexpected"
}

// Error represents a failed Torna call. Status carries the HTTP status
// for status-derived kinds, zero otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.cause != nil {
		msg = e.cause.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("torna: %s %d: %s", e.Kind, e.Status, msg)
	}
	if msg == "" {
		return fmt.Sprintf("torna: %s", e.Kind)
	}
	return fmt.Sprintf("torna: %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns the string reported to the caller for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindConfig:
		return "Configuration error: " + e.Message
	case KindNotFound:
		return "Error: Resource not found. Please check the ID is correct."
	case KindForbidden:
		return "Error: Permission denied. You don't have access to this resource."
	case KindRateLimited:
		return "Error: Rate limit exceeded. Please wait before making more requests."
	case KindStatus:
		return fmt.Sprintf("Error: API request failed with status %d", e.Status)
	case KindTimeout:
		return "Error: Request timed out. Please try again."
	case KindParse:
		return "Error: Failed to parse API response: " + e.detail()
	}
	return "Error: Unexpected error occurred: " + e.failureType()
}

// detail returns the most specific description available.
func (e *Error) detail() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return "unknown"
}

// failureType names the innermost cause's Go type, matching how
// unexpected failures are reported.
func (e *Error) failureType() string {
	if e.cause == nil {
		return "unknown"
	}
	c := e.cause
	for {
		u := errors.Unwrap(c)
		if u == nil {
			break
		}
		c = u
	}
	return fmt.Sprintf("%T", c)
}

// NewConfigError reports a missing or invalid configuration value.
func NewConfigError(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

// ClassifyStatus maps a non-2xx HTTP status to its category.
func ClassifyStatus(status int) *Error {
	kind := KindStatus
	switch status {
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}
	return &Error{Kind: kind, Status: status, Message: http.StatusText(status)}
}

// Classify maps any error from a call to an *Error. It is total: already
// classified errors pass through, timeouts are recognized from the
// transport, everything else is unexpected.
func Classify(err error) *Error {
	var terr *Error
	if errors.As(err, &terr) {
		return terr
	}

	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &Error{Kind: KindTimeout, cause: err}
	}

	return &Error{Kind: KindUnexpected, cause: err}
}
