package problemgen

import "fmt"

// BuildSet builds n questions cycling through kinds in order. A question
// whose prompt already appeared in the set is rebuilt up to
// MaxDedupAttempts times; small operand ranges may still force a repeat,
// which is accepted since its choices are independently valid.
func (f *Factory) BuildSet(kinds []Kind, difficulty Difficulty, n int) ([]*Question, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("build set: no kinds given")
	}
	if n < 1 {
		return nil, fmt.Errorf("build set: question count must be positive, got %d", n)
	}

	questions := make([]*Question, 0, n)
	prompts := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		kind := kinds[i%len(kinds)]

		var q *Question
		for attempt := 0; ; attempt++ {
			var err error
			q, err = f.Build(kind, difficulty)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", i+1, err)
			}
			if !prompts[q.Text] || attempt >= f.cfg.MaxDedupAttempts {
				break
			}
		}
		prompts[q.Text] = true
		questions = append(questions, q)
	}
	return questions, nil
}
