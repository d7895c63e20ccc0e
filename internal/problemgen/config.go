package problemgen

import "github.com/abhisek/stemarcade/internal/distractor"

// Config controls the behavior of the Factory.
type Config struct {
	// OptionCount is the number of choices per question.
	OptionCount int

	// Validators run in order on every built question; the first failure
	// rejects it.
	Validators []Validator

	// MaxDistractorAttempts bounds the distractor generator's retries.
	MaxDistractorAttempts int

	// MaxDedupAttempts bounds how often BuildSet rebuilds a question whose
	// prompt already appeared in the set.
	MaxDedupAttempts int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		OptionCount:           distractor.DefaultCount,
		Validators:            DefaultValidators(),
		MaxDistractorAttempts: distractor.DefaultMaxAttempts,
		MaxDedupAttempts:      8,
	}
}
