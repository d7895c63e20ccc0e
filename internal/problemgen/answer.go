package problemgen

import (
	"strconv"
	"strings"
)

// CheckAnswer reports whether value is the question's canonical answer.
// Comparison is exact after trimming surrounding whitespace: options are
// already canonical, so "2/4" is not accepted for "1/2".
func CheckAnswer(value string, q *Question) bool {
	value = strings.TrimSpace(value)
	if value == "" || q == nil {
		return false
	}
	return value == q.Answer
}

// ChoiceByIndex resolves a 1-based option number ("1" to "4") to the
// option text. Anything else is returned unchanged.
func ChoiceByIndex(input string, q *Question) string {
	input = strings.TrimSpace(input)
	idx, err := strconv.Atoi(input)
	if err != nil || q == nil || idx < 1 || idx > len(q.Choices) {
		return input
	}
	return q.Choices[idx-1]
}

// AnswerIndex returns the 0-based position of the answer in Choices, or -1.
func AnswerIndex(q *Question) int {
	for i, c := range q.Choices {
		if c == q.Answer {
			return i
		}
	}
	return -1
}
