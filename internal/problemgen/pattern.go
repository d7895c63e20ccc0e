package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// buildPattern shows four terms of a sequence and asks for the fifth.
func buildPattern(rng *rand.Rand, d Difficulty) draft {
	var terms []int
	var next int
	var rule string

	switch lvl := d.Level(); {
	case lvl == 1:
		start, step := between(rng, 1, 20), between(rng, 2, 9)
		terms = []int{start, start + step, start + 2*step, start + 3*step}
		next = start + 4*step
		rule = fmt.Sprintf("add %d each time", step)
	case lvl == 2 && rng.IntN(2) == 0:
		start, ratio := between(rng, 1, 5), between(rng, 2, 3)
		terms = []int{start, start * ratio, start * ratio * ratio, start * ratio * ratio * ratio}
		next = terms[3] * ratio
		rule = fmt.Sprintf("multiply by %d each time", ratio)
	case lvl == 2:
		step := between(rng, 3, 9)
		start := 4*step + between(rng, 1, 20)
		terms = []int{start, start - step, start - 2*step, start - 3*step}
		next = start - 4*step
		rule = fmt.Sprintf("subtract %d each time", step)
	case rng.IntN(2) == 0:
		k := between(rng, 1, 8)
		terms = []int{k * k, (k + 1) * (k + 1), (k + 2) * (k + 2), (k + 3) * (k + 3)}
		next = (k + 4) * (k + 4)
		rule = "consecutive square numbers"
	default:
		a, b := between(rng, 1, 5), between(rng, 1, 5)
		terms = []int{a, b, a + b, a + 2*b}
		next = terms[2] + terms[3]
		rule = "each term is the sum of the two before it"
	}

	shown := make([]string, len(terms))
	for i, t := range terms {
		shown[i] = strconv.Itoa(t)
	}
	return draft{
		text:        fmt.Sprintf("What comes next? %s, ?", strings.Join(shown, ", ")),
		answer:      strconv.Itoa(next),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(next),
		explanation: fmt.Sprintf("The rule is: %s. The next term is %d.", rule, next),
		visual:      map[string]any{"sequence": terms},
	}
}
