package distractor

import (
	"errors"
	"fmt"
)

// ErrExhausted is matched by every *ExhaustedError.
var ErrExhausted = errors.New("distractor generation exhausted")

// ErrInvalidCorrect indicates the correct value is not a member of the family.
var ErrInvalidCorrect = errors.New("correct value not valid for family")

// ExhaustedError reports that a family could not supply enough unique
// candidates within the retry budget. Callers should ask for fewer options
// or pick a different family.
type ExhaustedError struct {
	Family string
	Want   int
	Got    int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: family %s produced %d of %d unique options", ErrExhausted, e.Family, e.Got, e.Want)
}

func (e *ExhaustedError) Unwrap() error { return ErrExhausted }
