package problemgen

import "fmt"

// Validator checks a built question before the factory returns it.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural", "choices".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators is the chain every built question runs through.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&ChoicesValidator{Count: 4},
		&MathCheckValidator{},
	}
}

// runValidators stops at the first failure.
func runValidators(q *Question, validators []Validator) error {
	for _, v := range validators {
		if err := v.Validate(q); err != nil {
			return err
		}
	}
	return nil
}
