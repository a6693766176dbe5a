package gateway

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a gateway failure. Every provider error is converted into
// one of these before it reaches the session coordinator; the coordinator
// never sees a raw provider error.
type Kind string

const (
	// KindCredentialMissing means no usable API key is configured.
	KindCredentialMissing Kind = "credential_missing"

	// KindSafetyRejected means the provider blocked the content under its
	// safety policy.
	KindSafetyRejected Kind = "safety_rejected"

	// KindUnspecified covers every other failure: network, malformed
	// response, provider-side error.
	KindUnspecified Kind = "unspecified"
)

// User-visible messages per failure kind.
const (
	msgCredentialMissing = "API Key Required for Neural Processing"
	msgSafetyRejected    = "Security Violation: Target content breached local safety protocols."
	msgUnspecified       = "Interrogation failure: The neural engine encountered an unhandled exception."
)

// Error is a classified gateway failure.
type Error struct {
	Kind     Kind
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	var parts []string
	if e.Provider != "" {
		parts = append(parts, fmt.Sprintf("provider=%s", e.Provider))
	}
	parts = append(parts, fmt.Sprintf("kind=%s", e.Kind), e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on kind so callers can use errors.Is with sentinel values.
func (e *Error) Is(target error) bool {
	if ge, ok := target.(*Error); ok {
		return e.Kind == ge.Kind
	}
	return false
}

// UserMessage returns the human-readable message for display. The underlying
// detail stays in Cause for diagnostics.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return messageFor(e.Kind)
}

func messageFor(kind Kind) string {
	switch kind {
	case KindCredentialMissing:
		return msgCredentialMissing
	case KindSafetyRejected:
		return msgSafetyRejected
	default:
		return msgUnspecified
	}
}

// NewError creates a classified gateway error with the standard user message
// for its kind.
func NewError(kind Kind, provider string, cause error) *Error {
	return &Error{Kind: kind, Provider: provider, Message: messageFor(kind), Cause: cause}
}

// Classify converts an arbitrary provider error into a gateway error.
// Already-classified errors pass through unchanged.
func Classify(provider string, err error) *Error {
	if err == nil {
		return nil
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "api_key") ||
		strings.Contains(msg, "unauthorized") || strings.Contains(msg, "401"):
		return NewError(KindCredentialMissing, provider, err)
	case strings.Contains(msg, "safety") || strings.Contains(msg, "blocked") ||
		strings.Contains(msg, "prohibited"):
		return NewError(KindSafetyRejected, provider, err)
	default:
		return NewError(KindUnspecified, provider, err)
	}
}

// IsCredentialMissing reports whether the error is a missing-credential
// failure.
func IsCredentialMissing(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindCredentialMissing
}

// IsSafetyRejected reports whether the error is a safety-policy rejection.
func IsSafetyRejected(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == KindSafetyRejected
}
