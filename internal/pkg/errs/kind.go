package errs

import "errors"

// Kind is the closed set of outcomes a public operation may fail with.
type Kind int

const (
	KindUnknown Kind = iota
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindValidation
	KindInvalidTransition
	KindCapacityExceeded
	KindConflict
	KindTransientStore
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationError"
	case KindInvalidTransition:
		return "InvalidTransition"
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindConflict:
		return "Conflict"
	case KindTransientStore:
		return "TransientStoreError"
	case KindUnknown:
		return "Unknown"
	}
	return "Unknown"
}

// KindOf classifies err. Errors joined with errors.Join classify by the first match
// in the order below, so a validation failure never hides an authorization failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrTransientStore):
		return KindTransientStore
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	}
	return KindUnknown
}

// IsRetryable reports whether the caller may retry the operation automatically.
func IsRetryable(err error) bool {
	return KindOf(err) == KindTransientStore
}
