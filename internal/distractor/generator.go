// Package distractor synthesizes plausible-but-wrong answer options around a
// correct value.
package distractor

import (
	"fmt"
	"math/rand/v2"
)

// DefaultCount is the number of options shown per question.
const DefaultCount = 4

// DefaultMaxAttempts bounds both the perturbation and the filler phase.
const DefaultMaxAttempts = 64

// Family is a strategy for producing candidates near a correct value.
// Values are canonical strings: two candidates are the same option if and
// only if their strings are equal.
type Family interface {
	// Name identifies the family in errors and logs.
	Name() string

	// Valid reports whether v is a sensible, canonically formatted member.
	Valid(v string) bool

	// Perturb proposes a nearby wrong value. attempt grows with every call
	// so families can widen their search.
	Perturb(rng *rand.Rand, correct string, attempt int) (string, bool)

	// Filler proposes a pseudo-random member, used once perturbation stalls.
	Filler(rng *rand.Rand, correct string) (string, bool)

	// Capacity is the number of distinct valid values, or -1 if unbounded.
	Capacity() int
}

// Enumerator is implemented by small finite families. The generator falls
// back to enumeration after the filler phase, which makes success certain
// whenever Capacity() >= count.
type Enumerator interface {
	Enumerate() []string
}

// Generator produces shuffled option sets. It is not safe for concurrent use
// because it shares the caller's random source.
type Generator struct {
	rng         *rand.Rand
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New creates a Generator drawing randomness from rng.
func New(rng *rand.Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng, maxAttempts: DefaultMaxAttempts}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Generate returns count unique options including correct exactly once, in
// uniformly shuffled order.
func (g *Generator) Generate(correct string, fam Family, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("option count must be positive, got %d", count)
	}
	if !fam.Valid(correct) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidCorrect, correct, fam.Name())
	}
	if c := fam.Capacity(); c >= 0 && c < count {
		return nil, &ExhaustedError{Family: fam.Name(), Want: count, Got: c}
	}

	seen := map[string]bool{correct: true}
	options := make([]string, 0, count)
	options = append(options, correct)

	accept := func(v string, ok bool) {
		if !ok || seen[v] || !fam.Valid(v) {
			return
		}
		seen[v] = true
		options = append(options, v)
	}

	for attempt := 0; len(options) < count && attempt < g.maxAttempts; attempt++ {
		accept(fam.Perturb(g.rng, correct, attempt))
	}
	for i := 0; len(options) < count && i < g.maxAttempts; i++ {
		accept(fam.Filler(g.rng, correct))
	}
	if len(options) < count {
		if en, ok := fam.(Enumerator); ok {
			pool := en.Enumerate()
			g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
			for _, v := range pool {
				if len(options) == count {
					break
				}
				accept(v, true)
			}
		}
	}
	if len(options) < count {
		return nil, &ExhaustedError{Family: fam.Name(), Want: count, Got: len(options)}
	}

	g.rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	return options, nil
}
