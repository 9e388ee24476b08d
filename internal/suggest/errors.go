package suggest

import "errors"

// Kind classifies a suggestion failure so callers can react without
// inspecting message text.
type Kind int

const (
	// KindPreconditionFailed means the input was rejected before any
	// request was issued (empty or malformed restaurant URL).
	KindPreconditionFailed Kind = iota + 1

	// KindMissingCredential means no caller credential was supplied and no
	// environment credential is configured; no request was attempted.
	KindMissingCredential

	// KindProviderError covers transport, provider-side, and
	// authentication failures at the call boundary.
	KindProviderError

	// KindValidationError means the provider responded, but the output
	// failed the declared schema (missing output, unparseable JSON,
	// percentage out of range, empty reasoning).
	KindValidationError
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindMissingCredential:
		return "missing_credential"
	case KindProviderError:
		return "provider_error"
	case KindValidationError:
		return "validation_error"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the client: a kind tag plus a
// human-readable message, optionally wrapping the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or 0 when err is not a
// suggestion error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
