package problemgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/stemarcade/internal/distractor"
)

var pizzaSlices = []int{4, 6, 8, 12}

var friendlyDenominators = []int{2, 3, 4, 5, 6, 8, 10, 12}

// buildFraction asks about pizza slices at easy, same-denominator sums at
// medium, and mixed-denominator sums or differences at hard. Answers are
// in lowest terms.
func buildFraction(rng *rand.Rand, d Difficulty) draft {
	switch d.Level() {
	case 1:
		slices := pizzaSlices[rng.IntN(len(pizzaSlices))]
		eaten := between(rng, 1, slices-1)
		ans := distractor.FormatFraction(int64(eaten), int64(slices))
		return draft{
			text: fmt.Sprintf("A pizza is cut into %d equal slices and you eat %d of them. "+
				"What fraction of the pizza did you eat, in simplest form?", slices, eaten),
			answer:      ans,
			answerType:  AnswerTypeFraction,
			family:      distractor.Fraction{},
			explanation: fmt.Sprintf("%d out of %d slices is %d/%d, which simplifies to %s.", eaten, slices, eaten, slices, ans),
			visual:      map[string]any{"slices": slices, "eaten": eaten},
		}
	case 2:
		den := pizzaSlices[rng.IntN(len(pizzaSlices))]
		a := between(rng, 1, den-1)
		b := between(rng, 1, den-a)
		ans := distractor.FormatFraction(int64(a+b), int64(den))
		return draft{
			text:        fmt.Sprintf("What is %d/%d + %d/%d?", a, den, b, den),
			answer:      ans,
			answerType:  AnswerTypeFraction,
			family:      distractor.Fraction{},
			explanation: fmt.Sprintf("Same denominator: add the tops, %d + %d = %d, giving %d/%d = %s.", a, b, a+b, a+b, den, ans),
			visual:      map[string]any{"slices": den, "parts": []int{a, b}},
		}
	default:
		d1 := friendlyDenominators[rng.IntN(len(friendlyDenominators))]
		d2 := friendlyDenominators[rng.IntN(len(friendlyDenominators))]
		n1, n2 := between(rng, 1, d1-1), between(rng, 1, d2-1)
		op := "+"
		num := n1*d2 + n2*d1
		if rng.IntN(2) == 0 && n1*d2 > n2*d1 {
			op = "-"
			num = n1*d2 - n2*d1
		}
		ans := distractor.FormatFraction(int64(num), int64(d1*d2))
		return draft{
			text:        fmt.Sprintf("What is %d/%d %s %d/%d?", n1, d1, op, n2, d2),
			answer:      ans,
			answerType:  AnswerTypeFraction,
			family:      distractor.Fraction{},
			explanation: fmt.Sprintf("Use the common denominator %d: %d/%d %s %d/%d = %s.", d1*d2, n1*d2, d1*d2, op, n2*d1, d1*d2, ans),
		}
	}
}
