package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// buildArithmetic asks a single binary operation. Multiplication joins at
// medium and exact division at hard.
func buildArithmetic(rng *rand.Rand, d Difficulty) draft {
	lvl := d.Level()
	ops := []string{"+", "-"}
	if lvl >= 2 {
		ops = append(ops, "×")
	}
	if lvl >= 3 {
		ops = append(ops, "÷")
	}
	op := ops[rng.IntN(len(ops))]
	hi := [...]int{20, 99, 999}[lvl-1]

	var a, b, ans int
	switch op {
	case "+":
		a, b = between(rng, 1, hi), between(rng, 1, hi)
		ans = a + b
	case "-":
		a, b = between(rng, 1, hi), between(rng, 1, hi)
		if b > a {
			a, b = b, a
		}
		ans = a - b
	case "×":
		a, b = between(rng, 2, [...]int{9, 12, 25}[lvl-1]), between(rng, 2, 12)
		ans = a * b
	case "÷":
		b = between(rng, 2, 12)
		ans = between(rng, 2, 50)
		a = ans * b
	}

	return draft{
		text:        fmt.Sprintf("What is %d %s %d?", a, op, b),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(ans),
		explanation: fmt.Sprintf("%d %s %d = %d", a, op, b, ans),
		visual:      map[string]any{"a": a, "b": b, "op": op},
	}
}
