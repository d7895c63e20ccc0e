package distractor

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFraction renders n/d in lowest terms with the sign on the numerator.
// Whole numbers are rendered without a denominator.
func FormatFraction(n, d int64) string {
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(abs(n), d)
	if g > 1 {
		n /= g
		d /= g
	}
	if d == 1 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%d/%d", n, d)
}

// ParseFraction parses "a/b" or a bare integer into numerator and denominator.
func ParseFraction(s string) (int64, int64, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	if len(parts) == 1 {
		return num, 1, nil
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("zero denominator in %q", s)
	}
	return num, den, nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
