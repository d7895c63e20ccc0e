package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/abhisek/stemarcade/internal/distractor"
)

// expressionPuzzles pairs a description with the one expression that
// matches it. The remaining expressions are structurally similar
// distractors.
var expressionPuzzles = []struct {
	description string
	correct     string
	pool        []string
}{
	{"doubles x and then adds 1", "x*2 + 1", []string{"x*2 + 1", "(x + 1)*2", "x + 2", "x*2 - 1", "x*x + 1"}},
	{"adds 1 to x and then doubles it", "(x + 1)*2", []string{"(x + 1)*2", "x*2 + 1", "x + 1*2", "(x*2) + 2*x", "x + 2"}},
	{"is true only when x is even", "x%2 == 0", []string{"x%2 == 0", "x%2 == 1", "x/2 == 0", "x*2 == 0", "x%2 != 0"}},
	{"is the last item of list xs", "xs[len(xs)-1]", []string{"xs[len(xs)-1]", "xs[len(xs)]", "xs[0]", "xs[-1]", "xs[1]"}},
	{"squares x", "x*x", []string{"x*x", "x*2", "x + x", "x^x", "2*x*x"}},
}

// buildCode traces variables at easy, matches expressions at medium, and
// traces loops at hard.
func buildCode(rng *rand.Rand, d Difficulty) draft {
	switch d.Level() {
	case 1:
		x, add, mul := between(rng, 1, 9), between(rng, 1, 9), between(rng, 2, 3)
		ans := (x + add) * mul
		return draft{
			text:        fmt.Sprintf("After running `x := %d; x = x + %d; x = x * %d`, what is x?", x, add, mul),
			answer:      strconv.Itoa(ans),
			answerType:  AnswerTypeInteger,
			family:      nearFamily(ans),
			explanation: fmt.Sprintf("x becomes %d, then %d.", x+add, ans),
		}
	case 2:
		p := expressionPuzzles[rng.IntN(len(expressionPuzzles))]
		return draft{
			text:        fmt.Sprintf("Which expression %s?", p.description),
			answer:      p.correct,
			answerType:  AnswerTypeText,
			family:      distractor.Pool{Label: "expressions", Values: p.pool},
			explanation: fmt.Sprintf("`%s` %s.", p.correct, p.description),
		}
	default:
		if rng.IntN(2) == 0 {
			n := between(rng, 5, 20)
			ans := n * (n + 1) / 2
			return draft{
				text:        fmt.Sprintf("What is total after `total := 0; for i := 1; i <= %d; i++ { total += i }`?", n),
				answer:      strconv.Itoa(ans),
				answerType:  AnswerTypeInteger,
				family:      nearFamily(ans),
				explanation: fmt.Sprintf("The loop adds 1 through %d: %d × %d ÷ 2 = %d.", n, n, n+1, ans),
			}
		}
		n, step := between(rng, 10, 40), between(rng, 2, 5)
		ans := (n + step - 1) / step
		return draft{
			text:        fmt.Sprintf("How many times does `for i := 0; i < %d; i += %d { count++ }` run its body?", n, step),
			answer:      strconv.Itoa(ans),
			answerType:  AnswerTypeInteger,
			family:      nearFamily(ans),
			explanation: fmt.Sprintf("i takes the values 0, %d, %d, ... below %d: %d iterations.", step, 2*step, n, ans),
		}
	}
}
