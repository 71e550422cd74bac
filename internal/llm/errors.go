package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind categorizes provider failures.
type ErrorKind string

const (
	KindUnknown         ErrorKind = "unknown"
	KindContextOverflow ErrorKind = "context_overflow"
	KindMaxTokens       ErrorKind = "max_tokens"
	KindInvalidRequest  ErrorKind = "invalid_request"
	KindRateLimit       ErrorKind = "rate_limit"
	KindOverloaded      ErrorKind = "overloaded"
	KindAuth            ErrorKind = "auth"
	KindEmpty           ErrorKind = "empty_response"
	KindRefused         ErrorKind = "refused"
)

// ProviderError is a failed provider call.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Rejected reports whether the provider refused this particular request
// (too long, malformed or blocked for this model) as opposed to being
// unusable.
func (e *ProviderError) Rejected() bool {
	switch e.Kind {
	case KindContextOverflow, KindMaxTokens, KindInvalidRequest, KindRefused:
		return true
	}
	return false
}

// IsRejection reports whether err is a ProviderError the provider raised
// because it refused the request.
func IsRejection(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Rejected()
}

// ProviderDegradedError records that one provider's contribution to an
// artifact was replaced by a sentinel. It never aborts a run.
type ProviderDegradedError struct {
	Provider string
	Artifact string
	Err      error
}

func (e *ProviderDegradedError) Error() string {
	return fmt.Sprintf("%s degraded for %s: %v", e.Provider, e.Artifact, e.Err)
}

func (e *ProviderDegradedError) Unwrap() error { return e.Err }

// Reason is the short cause used in sentinels.
func (e *ProviderDegradedError) Reason() string {
	var pe *ProviderError
	if errors.As(e.Err, &pe) {
		return string(pe.Kind)
	}
	return string(KindUnknown)
}

// classify builds a ProviderError from an HTTP status (0 when unknown) and
// the provider's error message.
func classify(provider string, status int, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Kind:       classifyKind(status, err.Error()),
		StatusCode: status,
		Err:        err,
	}
}

func classifyKind(status int, msg string) ErrorKind {
	lower := strings.ToLower(msg)

	// message checks first: some providers report context overflow as 400
	// and others as 413 or 429
	switch {
	case isContextOverflowMessage(lower):
		return KindContextOverflow
	case strings.Contains(lower, "max_tokens") &&
		(strings.Contains(lower, "maximum") || strings.Contains(lower, "exceed") || strings.Contains(lower, ">")):
		return KindMaxTokens
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusServiceUnavailable, 529:
		return KindOverloaded
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnprocessableEntity:
		return KindInvalidRequest
	}

	switch {
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "resource_exhausted") || strings.Contains(lower, "quota"):
		return KindRateLimit
	case strings.Contains(lower, "overloaded"):
		return KindOverloaded
	case strings.Contains(lower, "invalid api key") || strings.Contains(lower, "unauthorized") || strings.Contains(lower, "permission_denied"):
		return KindAuth
	}
	return KindUnknown
}

func isContextOverflowMessage(lower string) bool {
	patterns := []string{
		"context_length_exceeded",
		"maximum context length",
		"context length",
		"context window",
		"prompt is too long",
		"input is too long",
		"too many tokens",
		"request too large",
		"exceeds the maximum number of tokens",
		"input token count",
	}
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
