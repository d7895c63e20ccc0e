package session

import (
	"fmt"
	"slices"

	"github.com/abhisek/stemarcade/internal/problemgen"
)

// Default session settings.
const (
	DefaultQuestionCount = 10
	DefaultDuration      = 120 // seconds
	DefaultBaseScore     = 10
	DefaultStreakBonus   = 2
)

// Config parameterizes one session. It is copied on Start and never
// modified afterwards.
type Config struct {
	// Game names the preset the session was started from, if any.
	Game string

	QuestionCount int

	// Duration is the session budget in whole seconds.
	Duration int

	BaseScore   int
	StreakBonus int
	Difficulty  problemgen.Difficulty

	// Kinds are mixed round-robin. Empty means every kind.
	Kinds []problemgen.Kind

	// Seed fixes question generation. Zero picks a random seed.
	Seed uint64
}

// DefaultConfig returns a ten-question, two-minute easy session over all kinds.
func DefaultConfig() Config {
	return Config{
		QuestionCount: DefaultQuestionCount,
		Duration:      DefaultDuration,
		BaseScore:     DefaultBaseScore,
		StreakBonus:   DefaultStreakBonus,
		Difficulty:    problemgen.DifficultyEasy,
		Kinds:         problemgen.AllKinds(),
	}
}

// Validate checks the config and fills in defaults for empty Kinds and
// Difficulty.
func (c *Config) Validate() error {
	if c.QuestionCount < 1 {
		return fmt.Errorf("%w: question count must be positive, got %d", ErrInvalidConfig, c.QuestionCount)
	}
	if c.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least one second, got %d", ErrInvalidConfig, c.Duration)
	}
	if c.BaseScore < 0 || c.StreakBonus < 0 {
		return fmt.Errorf("%w: base score and streak bonus must not be negative", ErrInvalidConfig)
	}
	d, err := problemgen.ParseDifficulty(string(c.Difficulty))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	c.Difficulty = d
	if len(c.Kinds) == 0 {
		c.Kinds = problemgen.AllKinds()
	}
	for _, k := range c.Kinds {
		if _, err := problemgen.ParseKind(string(k)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c Config) clone() Config {
	c.Kinds = slices.Clone(c.Kinds)
	return c
}
