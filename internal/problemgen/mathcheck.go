package problemgen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhisek/stemarcade/internal/distractor"
)

// MathCheckValidator independently recomputes the answer of arithmetic and
// fraction prompts from the question text. Prompts without a recognizable
// expression pass through.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	if q.Kind != KindArithmetic && q.Kind != KindFraction {
		return nil
	}
	computed, err := computeAnswer(q.Text)
	if err != nil {
		return nil
	}
	if computed != q.Answer {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %q but question claims %q", computed, q.Answer),
		}
	}
	return nil
}

var (
	// "a/b + c/d" with any of + - × ÷ between the fractions.
	fractionArithRe = regexp.MustCompile(`(\d+)\s*/\s*(\d+)\s*([+\-×÷*])\s*(\d+)\s*/\s*(\d+)`)

	// Integer arithmetic. Division needs spaces to stay distinct from fractions.
	intArithRe = regexp.MustCompile(`(?:^|[^\d/])(\d+)\s+([+\-×÷*])\s+(\d+)(?:[^\d/]|$)`)
)

// computeAnswer extracts the first expression from text and evaluates it
// to canonical form.
func computeAnswer(text string) (string, error) {
	if m := fractionArithRe.FindStringSubmatch(text); m != nil {
		aN, _ := strconv.ParseInt(m[1], 10, 64)
		aD, _ := strconv.ParseInt(m[2], 10, 64)
		bN, _ := strconv.ParseInt(m[4], 10, 64)
		bD, _ := strconv.ParseInt(m[5], 10, 64)
		if aD == 0 || bD == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		var rN, rD int64
		switch normalizeOp(m[3]) {
		case "+":
			rN, rD = aN*bD+bN*aD, aD*bD
		case "-":
			rN, rD = aN*bD-bN*aD, aD*bD
		case "*":
			rN, rD = aN*bN, aD*bD
		case "/":
			if bN == 0 {
				return "", fmt.Errorf("division by zero")
			}
			rN, rD = aN*bD, aD*bN
		}
		return distractor.FormatFraction(rN, rD), nil
	}

	if m := intArithRe.FindStringSubmatch(text); m != nil {
		a, _ := strconv.ParseInt(m[1], 10, 64)
		b, _ := strconv.ParseInt(m[3], 10, 64)
		switch normalizeOp(m[2]) {
		case "+":
			return strconv.FormatInt(a+b, 10), nil
		case "-":
			return strconv.FormatInt(a-b, 10), nil
		case "*":
			return strconv.FormatInt(a*b, 10), nil
		case "/":
			if b == 0 || a%b != 0 {
				return "", fmt.Errorf("inexact division")
			}
			return strconv.FormatInt(a/b, 10), nil
		}
	}

	return "", fmt.Errorf("not computable")
}

// normalizeOp maps the display symbols to ASCII operators.
func normalizeOp(op string) string {
	switch op {
	case "×":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}
