// Package problemgen builds randomized multiple-choice questions for the
// arcade games. Given the same seed a Factory produces the same sequence.
package problemgen

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/stemarcade/internal/distractor"
)

// ErrUnknownKind is returned for a Kind with no registered builder.
var ErrUnknownKind = errors.New("unknown question kind")

// draft is what a kind builder produces before options are attached.
type draft struct {
	text        string
	answer      string
	answerType  AnswerType
	family      distractor.Family
	explanation string
	visual      map[string]any
}

type builder func(rng *rand.Rand, d Difficulty) draft

var builders = map[Kind]builder{
	KindArithmetic:    buildArithmetic,
	KindGeometric:     buildGeometric,
	KindCombinatorial: buildCombinatorial,
	KindPattern:       buildPattern,
	KindData:          buildData,
	KindFraction:      buildFraction,
	KindProbability:   buildProbability,
	KindCode:          buildCode,
}

// Factory composes questions from a random source. It is not safe for
// concurrent use.
type Factory struct {
	rng         *rand.Rand
	distractors *distractor.Generator
	cfg         Config
}

// NewFactory creates a Factory drawing all randomness from rng.
func NewFactory(rng *rand.Rand, cfg Config) *Factory {
	if cfg.OptionCount <= 0 {
		cfg.OptionCount = distractor.DefaultCount
	}
	return &Factory{
		rng:         rng,
		distractors: distractor.New(rng, distractor.WithMaxAttempts(cfg.MaxDistractorAttempts)),
		cfg:         cfg,
	}
}

// NewRand returns a PCG-backed source. Seed 0 picks a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build produces one validated question of the given kind.
func (f *Factory) Build(kind Kind, difficulty Difficulty) (*Question, error) {
	b, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	d := b(f.rng, difficulty)
	choices, err := f.distractors.Generate(d.answer, d.family, f.cfg.OptionCount)
	if err != nil {
		return nil, fmt.Errorf("build %s question: %w", kind, err)
	}

	q := &Question{
		Kind:        kind,
		Text:        d.text,
		Answer:      d.answer,
		AnswerType:  d.answerType,
		Choices:     choices,
		Explanation: d.explanation,
		Visual:      d.visual,
		Difficulty:  difficulty,
	}
	if err := runValidators(q, f.cfg.Validators); err != nil {
		return nil, fmt.Errorf("build %s question: %w", kind, err)
	}
	return q, nil
}

// between returns a uniform integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// nearFamily picks an integer family whose spread grows with the answer's
// magnitude so distractors stay plausible.
func nearFamily(answer int) distractor.IntNear {
	spread := answer / 10
	if spread < 3 {
		spread = 3
	}
	return distractor.IntNear{Spread: spread, NonNegative: true}
}
