package problemgen

import "fmt"

// Question is one generated multiple-choice question.
type Question struct {
	// Kind is the question family the factory dispatched on.
	Kind Kind

	// Text is the prompt shown to the player, e.g. "What is 345 + 278?".
	Text string

	// Answer is the canonical correct answer and the exact-match key.
	// Numbers use canonical formatting: "623", "3/4", "0.25".
	Answer string

	// AnswerType describes how Answer is formatted.
	AnswerType AnswerType

	// Choices holds exactly four unique options, shuffled, containing
	// Answer exactly once.
	Choices []string

	// Explanation is a short worked solution shown after answering.
	Explanation string

	// Visual is an optional structured payload for front-ends (chart
	// values, pizza slices, sequence terms). The engine never reads it.
	Visual map[string]any

	// Difficulty is the difficulty the question was built for.
	Difficulty Difficulty
}

// Kind identifies a question family.
type Kind string

const (
	KindArithmetic    Kind = "arithmetic"
	KindGeometric     Kind = "geometric"
	KindCombinatorial Kind = "combinatorial"
	KindPattern       Kind = "pattern"
	KindData          Kind = "data"
	KindFraction      Kind = "fraction"
	KindProbability   Kind = "probability"
	KindCode          Kind = "code"
)

// AllKinds returns every kind in display order.
func AllKinds() []Kind {
	return []Kind{
		KindArithmetic, KindGeometric, KindCombinatorial, KindPattern,
		KindData, KindFraction, KindProbability, KindCode,
	}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Difficulty scales operand ranges.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string to a Difficulty. Empty means easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case "", DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("unknown difficulty %q: must be easy, medium or hard", s)
}

// Level maps the difficulty to 1 (easy) through 3 (hard).
func (d Difficulty) Level() int {
	switch d {
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 1
	}
}

// AnswerType describes the representation of the correct answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "0.25"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "2"
	AnswerTypeText     AnswerType = "text"     // e.g. "x*2 + 1"
)
