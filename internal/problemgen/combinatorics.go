package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

func buildCombinatorial(rng *rand.Rand, d Difficulty) draft {
	switch d.Level() {
	case 1:
		shirts, pants := between(rng, 2, 5), between(rng, 2, 4)
		ans := shirts * pants
		return draft{
			text:        fmt.Sprintf("You have %d shirts and %d pairs of pants. How many different outfits can you make?", shirts, pants),
			answer:      strconv.Itoa(ans),
			answerType:  AnswerTypeInteger,
			family:      nearFamily(ans),
			explanation: fmt.Sprintf("Each shirt pairs with each pair of pants: %d × %d = %d.", shirts, pants, ans),
		}
	case 2:
		if rng.IntN(2) == 0 {
			n := between(rng, 3, 5)
			ans := factorial(n)
			return draft{
				text:        fmt.Sprintf("In how many different orders can %d different books be placed on a shelf?", n),
				answer:      strconv.Itoa(ans),
				answerType:  AnswerTypeInteger,
				family:      nearFamily(ans),
				explanation: fmt.Sprintf("%d! = %d.", n, ans),
			}
		}
		n := between(rng, 4, 10)
		ans := n * (n - 1) / 2
		return draft{
			text:        fmt.Sprintf("%d friends each shake hands once with every other friend. How many handshakes happen?", n),
			answer:      strconv.Itoa(ans),
			answerType:  AnswerTypeInteger,
			family:      nearFamily(ans),
			explanation: fmt.Sprintf("Each pair shakes once: %d × %d ÷ 2 = %d.", n, n-1, ans),
		}
	default:
		n := between(rng, 5, 10)
		if rng.IntN(2) == 0 {
			ans := n * (n - 1) * (n - 2)
			return draft{
				text:        fmt.Sprintf("%d runners race. In how many ways can gold, silver and bronze be awarded?", n),
				answer:      strconv.Itoa(ans),
				answerType:  AnswerTypeInteger,
				family:      nearFamily(ans),
				explanation: fmt.Sprintf("Order matters: %d × %d × %d = %d.", n, n-1, n-2, ans),
			}
		}
		k := between(rng, 2, 3)
		ans := choose(n, k)
		return draft{
			text:        fmt.Sprintf("How many ways can you pick a team of %d from %d players?", k, n),
			answer:      strconv.Itoa(ans),
			answerType:  AnswerTypeInteger,
			family:      nearFamily(ans),
			explanation: fmt.Sprintf("Order does not matter: C(%d, %d) = %d.", n, k, ans),
		}
	}
}

func factorial(n int) int {
	out := 1
	for i := 2; i <= n; i++ {
		out *= i
	}
	return out
}

func choose(n, k int) int {
	out := 1
	for i := 1; i <= k; i++ {
		out = out * (n - k + i) / i
	}
	return out
}
