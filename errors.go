package domref

import "errors"

// Sentinel errors for binding operations.
var (
	ErrNotFound         = errors.New("domref: element not found")
	ErrUnassignable     = errors.New("domref: handler cannot receive references")
	ErrMethodNotFound   = errors.New("domref: handler method not found")
	ErrNotListener      = errors.New("domref: handler is not an event listener")
	ErrInvalidConfig    = errors.New("domref: invalid configuration")
	ErrInvalidFormat    = errors.New("domref: invalid manifest format")
	ErrSignatureInvalid = errors.New("domref: manifest signature verification failed")
	ErrDuplicate        = errors.New("domref: template already registered")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsBindingError checks if err came from invoking an event binding whose
// handler could not serve it (missing method or not a listener).
func IsBindingError(err error) bool {
	return errors.Is(err, ErrMethodNotFound) || errors.Is(err, ErrNotListener)
}
