package session

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is matched by every *PreconditionError.
	ErrPrecondition = errors.New("operation not allowed in current phase")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid session config")

	// ErrClosed is returned by Engine methods after Close.
	ErrClosed = errors.New("session engine closed")
)

// PreconditionError reports an operation attempted in the wrong phase.
// State is never modified when it is returned.
type PreconditionError struct {
	Op    string
	Phase Phase
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: not allowed in phase %s", e.Op, e.Phase)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}
