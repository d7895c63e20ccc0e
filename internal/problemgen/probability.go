package problemgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/stemarcade/internal/distractor"
)

var marbleTotals = []int{4, 5, 10, 20}

// probabilityDecimal formats probabilities to two places.
var probabilityDecimal = distractor.Decimal{Places: 2, Step: 0.05, Bounded: true, Min: 0, Max: 1}

// buildProbability covers one die at easy, marble bags (as decimals) at
// medium, and two-dice sums at hard.
func buildProbability(rng *rand.Rand, d Difficulty) draft {
	unit := distractor.Fraction{Unit: true}

	switch d.Level() {
	case 1:
		k := between(rng, 1, 5)
		ans := distractor.FormatFraction(int64(6-k), 6)
		return draft{
			text:        fmt.Sprintf("You roll a fair six-sided die. What is the probability of rolling higher than %d?", k),
			answer:      ans,
			answerType:  AnswerTypeFraction,
			family:      unit,
			explanation: fmt.Sprintf("%d of the 6 faces are higher than %d, so %d/6 = %s.", 6-k, k, 6-k, ans),
			visual:      map[string]any{"dice": 1, "threshold": k},
		}
	case 2:
		total := marbleTotals[rng.IntN(len(marbleTotals))]
		red := between(rng, 1, total-1)
		ans := probabilityDecimal.Format(float64(red) / float64(total))
		return draft{
			text: fmt.Sprintf("A bag holds %d red and %d blue marbles. You draw one at random. "+
				"What is the probability it is red, as a decimal?", red, total-red),
			answer:      ans,
			answerType:  AnswerTypeDecimal,
			family:      probabilityDecimal,
			explanation: fmt.Sprintf("%d red out of %d marbles: %d ÷ %d = %s.", red, total, red, total, ans),
			visual:      map[string]any{"red": red, "blue": total - red},
		}
	default:
		target := between(rng, 2, 12)
		ways := 6 - abs(target-7)
		ans := distractor.FormatFraction(int64(ways), 36)
		return draft{
			text:        fmt.Sprintf("You roll two fair dice. What is the probability that they add up to %d?", target),
			answer:      ans,
			answerType:  AnswerTypeFraction,
			family:      unit,
			explanation: fmt.Sprintf("%d of the 36 outcomes sum to %d, so %d/36 = %s.", ways, target, ways, ans),
			visual:      map[string]any{"dice": 2, "target": target},
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
