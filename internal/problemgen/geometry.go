package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/abhisek/stemarcade/internal/distractor"
)

// buildGeometric covers angles, perimeters and areas. Area questions are
// reserved for medium and hard.
func buildGeometric(rng *rand.Rand, d Difficulty) draft {
	lvl := d.Level()
	variants := []func(*rand.Rand, int) draft{straightAngle, triangleAngle, rectanglePerimeter}
	if lvl >= 2 {
		variants = append(variants, rectangleArea)
	}
	if lvl >= 3 {
		variants = append(variants, rightTriangleArea)
	}
	return variants[rng.IntN(len(variants))](rng, lvl)
}

func straightAngle(rng *rand.Rand, _ int) draft {
	x := between(rng, 10, 170)
	ans := 180 - x
	return draft{
		text:        fmt.Sprintf("Two angles sit on a straight line. One is %d°. How many degrees is the other?", x),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      distractor.Angle{},
		explanation: fmt.Sprintf("Angles on a straight line add to 180°, so 180 - %d = %d.", x, ans),
		visual:      map[string]any{"shape": "line", "angles": []int{x}},
	}
}

func triangleAngle(rng *rand.Rand, _ int) draft {
	a := between(rng, 20, 80)
	b := between(rng, 20, 170-a)
	ans := 180 - a - b
	return draft{
		text:        fmt.Sprintf("A triangle has angles of %d° and %d°. How many degrees is the third angle?", a, b),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      distractor.Angle{},
		explanation: fmt.Sprintf("Angles in a triangle add to 180°, so 180 - %d - %d = %d.", a, b, ans),
		visual:      map[string]any{"shape": "triangle", "angles": []int{a, b}},
	}
}

func rectanglePerimeter(rng *rand.Rand, lvl int) draft {
	w, h := between(rng, 2, 10*lvl), between(rng, 2, 10*lvl)
	ans := 2 * (w + h)
	return draft{
		text:        fmt.Sprintf("A rectangle is %d units wide and %d units tall. What is its perimeter?", w, h),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(ans),
		explanation: fmt.Sprintf("Perimeter = 2 × (%d + %d) = %d.", w, h, ans),
		visual:      map[string]any{"shape": "rectangle", "width": w, "height": h},
	}
}

func rectangleArea(rng *rand.Rand, lvl int) draft {
	w, h := between(rng, 2, 6*lvl), between(rng, 2, 6*lvl)
	ans := w * h
	return draft{
		text:        fmt.Sprintf("A rectangle is %d units wide and %d units tall. What is its area in square units?", w, h),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(ans),
		explanation: fmt.Sprintf("Area = %d × %d = %d.", w, h, ans),
		visual:      map[string]any{"shape": "rectangle", "width": w, "height": h},
	}
}

func rightTriangleArea(rng *rand.Rand, _ int) draft {
	base, height := 2*between(rng, 2, 10), between(rng, 2, 15)
	ans := base * height / 2
	return draft{
		text:        fmt.Sprintf("A right triangle has legs of %d and %d units. What is its area in square units?", base, height),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(ans),
		explanation: fmt.Sprintf("Area = %d × %d ÷ 2 = %d.", base, height, ans),
		visual:      map[string]any{"shape": "right-triangle", "base": base, "height": height},
	}
}
