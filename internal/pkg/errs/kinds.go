package errs

// Error kinds surfaced to API callers. Domain and usecase errors are marked
// with exactly one of these.
var (
	ErrValidation        = New("kind: validation")
	ErrNotFound          = New("kind: not found")
	ErrForbidden         = New("kind: forbidden")
	ErrInvalidTransition = New("kind: invalid transition")
	ErrConflict          = New("kind: conflict")
)

// Kind returns the stable kind name for err, or "" for unexpected errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case Is(err, ErrNotFound):
		return "NOT_FOUND"
	case Is(err, ErrForbidden):
		return "FORBIDDEN"
	case Is(err, ErrInvalidTransition):
		return "INVALID_TRANSITION"
	case Is(err, ErrConflict):
		return "CONFLICT"
	default:
		return ""
	}
}

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

func Validationf(format string, args ...any) error {
	return Mark(Newf(format, args...), ErrValidation)
}

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

func Forbidden(msg string) error {
	return Mark(New(msg), ErrForbidden)
}

func Conflict(msg string) error {
	return Mark(New(msg), ErrConflict)
}
