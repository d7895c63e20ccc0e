package distractor

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
)

// IntNear perturbs an integer by small deltas. The search widens every
// eight attempts.
type IntNear struct {
	Spread      int  // initial maximum delta, default 3
	NonNegative bool // reject negative candidates (counts, lengths)
}

func (f IntNear) Name() string { return "int-near" }

func (f IntNear) Valid(v string) bool {
	n, err := strconv.Atoi(v)
	if err != nil || strconv.Itoa(n) != v {
		return false
	}
	return !f.NonNegative || n >= 0
}

func (f IntNear) Perturb(rng *rand.Rand, correct string, attempt int) (string, bool) {
	n, err := strconv.Atoi(correct)
	if err != nil {
		return "", false
	}
	spread := f.spread() * (1 + attempt/8)
	return strconv.Itoa(n + signedDelta(rng, spread)), true
}

func (f IntNear) Filler(rng *rand.Rand, correct string) (string, bool) {
	n, err := strconv.Atoi(correct)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n + signedDelta(rng, 10*f.spread())), true
}

func (f IntNear) Capacity() int { return -1 }

func (f IntNear) spread() int {
	if f.Spread <= 0 {
		return 3
	}
	return f.Spread
}

// IntRange draws integers from the closed interval [Min, Max].
type IntRange struct {
	Min, Max int
}

func (f IntRange) Name() string { return fmt.Sprintf("int-range[%d,%d]", f.Min, f.Max) }

func (f IntRange) Valid(v string) bool {
	n, err := strconv.Atoi(v)
	if err != nil || strconv.Itoa(n) != v {
		return false
	}
	return n >= f.Min && n <= f.Max
}

func (f IntRange) Perturb(rng *rand.Rand, correct string, _ int) (string, bool) {
	n, err := strconv.Atoi(correct)
	if err != nil {
		return "", false
	}
	return strconv.Itoa(n + signedDelta(rng, 3)), true
}

func (f IntRange) Filler(rng *rand.Rand, _ string) (string, bool) {
	if f.Max < f.Min {
		return "", false
	}
	return strconv.Itoa(f.Min + rng.IntN(f.Max-f.Min+1)), true
}

func (f IntRange) Capacity() int {
	if f.Max < f.Min {
		return 0
	}
	return f.Max - f.Min + 1
}

func (f IntRange) Enumerate() []string {
	out := make([]string, 0, f.Capacity())
	for n := f.Min; n <= f.Max; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

// Angle produces whole-degree angles in [0, 180]. The first perturbations
// are the classic mix-ups: supplement and complement.
type Angle struct {
	Step int // delta granularity for later attempts, default 5
}

func (f Angle) Name() string { return "angle" }

func (f Angle) Valid(v string) bool { return IntRange{Min: 0, Max: 180}.Valid(v) }

func (f Angle) Perturb(rng *rand.Rand, correct string, attempt int) (string, bool) {
	n, err := strconv.Atoi(correct)
	if err != nil {
		return "", false
	}
	switch attempt {
	case 0:
		return strconv.Itoa(180 - n), true
	case 1:
		return strconv.Itoa(90 - n), true
	}
	step := f.Step
	if step <= 0 {
		step = 5
	}
	return strconv.Itoa(n + step*signedDelta(rng, 1+attempt/4)), true
}

func (f Angle) Filler(rng *rand.Rand, _ string) (string, bool) {
	return strconv.Itoa(rng.IntN(181)), true
}

func (f Angle) Capacity() int { return 181 }

func (f Angle) Enumerate() []string { return IntRange{Min: 0, Max: 180}.Enumerate() }

// Fraction perturbs a reduced fraction into structurally similar ones:
// swapped parts and off-by-one numerators or denominators. Equivalent
// fractions collapse to one canonical string so they never appear twice.
type Fraction struct {
	MaxDen int64 // largest denominator allowed, 0 = unbounded
	Unit   bool  // restrict to [0, 1], for probabilities
}

func (f Fraction) Name() string { return "fraction" }

func (f Fraction) Valid(v string) bool {
	n, d, err := ParseFraction(v)
	if err != nil || n < 0 || d <= 0 {
		return false
	}
	if f.MaxDen > 0 && d > f.MaxDen {
		return false
	}
	if f.Unit && n > d {
		return false
	}
	return FormatFraction(n, d) == v
}

func (f Fraction) Perturb(rng *rand.Rand, correct string, attempt int) (string, bool) {
	n, d, err := ParseFraction(correct)
	if err != nil {
		return "", false
	}
	switch attempt % 6 {
	case 0:
		if n == 0 {
			return "", false
		}
		return FormatFraction(d, n), true
	case 1:
		return FormatFraction(n+1, d), true
	case 2:
		return FormatFraction(n-1, d), true
	case 3:
		return FormatFraction(n, d+1), true
	case 4:
		if d <= 1 {
			return "", false
		}
		return FormatFraction(n, d-1), true
	default:
		k := int64(1 + rng.IntN(3))
		return FormatFraction(n+k, d+k), true
	}
}

func (f Fraction) Filler(rng *rand.Rand, correct string) (string, bool) {
	maxDen := f.MaxDen
	if maxDen <= 1 {
		_, d, err := ParseFraction(correct)
		if err != nil {
			return "", false
		}
		maxDen = 2 * (d + 1)
	}
	d := 2 + rng.Int64N(maxDen-1)
	n := 1 + rng.Int64N(d)
	return FormatFraction(n, d), true
}

func (f Fraction) Capacity() int { return -1 }

// Decimal perturbs a fixed-precision decimal by multiples of Step, optionally
// bounded to [Min, Max] (probabilities use [0, 1]).
type Decimal struct {
	Places  int
	Step    float64
	Bounded bool
	Min     float64
	Max     float64
}

func (f Decimal) Name() string { return "decimal" }

// Format renders v with the family's precision.
func (f Decimal) Format(v float64) string {
	s := strconv.FormatFloat(v, 'f', f.Places, 64)
	if s == "-"+strconv.FormatFloat(0, 'f', f.Places, 64) {
		s = s[1:]
	}
	return s
}

func (f Decimal) Valid(v string) bool {
	x, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return false
	}
	if f.Format(x) != v {
		return false
	}
	return !f.Bounded || (x >= f.Min-f.eps() && x <= f.Max+f.eps())
}

func (f Decimal) Perturb(rng *rand.Rand, correct string, attempt int) (string, bool) {
	x, err := strconv.ParseFloat(correct, 64)
	if err != nil {
		return "", false
	}
	k := signedDelta(rng, 2+attempt/4)
	return f.Format(x + float64(k)*f.step()), true
}

func (f Decimal) Filler(rng *rand.Rand, correct string) (string, bool) {
	if f.Bounded {
		steps := int(math.Round((f.Max - f.Min) / f.step()))
		return f.Format(f.Min + float64(rng.IntN(steps+1))*f.step()), true
	}
	x, err := strconv.ParseFloat(correct, 64)
	if err != nil {
		return "", false
	}
	return f.Format(x + float64(signedDelta(rng, 20))*f.step()), true
}

func (f Decimal) Capacity() int {
	if !f.Bounded {
		return -1
	}
	return int(math.Round((f.Max-f.Min)/f.step())) + 1
}

func (f Decimal) step() float64 {
	if f.Step > 0 {
		return f.Step
	}
	return math.Pow10(-f.Places)
}

func (f Decimal) eps() float64 { return math.Pow10(-f.Places) / 2 }

// Pool draws alternatives from a fixed set, for answers that are labels or
// expressions rather than numbers. The correct value must be in the pool.
type Pool struct {
	Label  string
	Values []string
}

func (f Pool) Name() string {
	if f.Label != "" {
		return "pool:" + f.Label
	}
	return "pool"
}

func (f Pool) Valid(v string) bool { return slices.Contains(f.Values, v) }

func (f Pool) Perturb(rng *rand.Rand, _ string, _ int) (string, bool) {
	if len(f.Values) == 0 {
		return "", false
	}
	return f.Values[rng.IntN(len(f.Values))], true
}

func (f Pool) Filler(rng *rand.Rand, correct string) (string, bool) {
	return f.Perturb(rng, correct, 0)
}

func (f Pool) Capacity() int {
	uniq := make(map[string]struct{}, len(f.Values))
	for _, v := range f.Values {
		uniq[v] = struct{}{}
	}
	return len(uniq)
}

func (f Pool) Enumerate() []string { return slices.Clone(f.Values) }

// signedDelta returns a non-zero integer in [-spread, spread].
func signedDelta(rng *rand.Rand, spread int) int {
	if spread < 1 {
		spread = 1
	}
	d := 1 + rng.IntN(spread)
	if rng.IntN(2) == 0 {
		return -d
	}
	return d
}
