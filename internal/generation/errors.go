package generation

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("generation unavailable")
)

// InputError is a validation failure with a user-facing message.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }
