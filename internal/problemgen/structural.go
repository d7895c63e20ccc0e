package problemgen

// StructuralValidator checks that required fields are present and enum
// values are known.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{Validator: v.Name(), Message: "question text is empty"}
	}
	if len(q.Text) > 500 {
		return &ValidationError{Validator: v.Name(), Message: "question text exceeds 500 characters"}
	}
	if q.Answer == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if _, err := ParseKind(string(q.Kind)); err != nil {
		return &ValidationError{Validator: v.Name(), Message: "unknown kind " + string(q.Kind)}
	}
	switch q.AnswerType {
	case AnswerTypeInteger, AnswerTypeDecimal, AnswerTypeFraction, AnswerTypeText:
	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   "answer type must be \"integer\", \"decimal\", \"fraction\", or \"text\"",
		}
	}
	return nil
}

// ChoicesValidator enforces the option invariants: exactly Count unique
// options containing the answer once.
type ChoicesValidator struct {
	Count int
}

func (v *ChoicesValidator) Name() string { return "choices" }

func (v *ChoicesValidator) Validate(q *Question) *ValidationError {
	if v.Count > 0 && len(q.Choices) != v.Count {
		return &ValidationError{Validator: v.Name(), Message: "wrong number of choices"}
	}
	seen := make(map[string]bool, len(q.Choices))
	hits := 0
	for _, c := range q.Choices {
		if seen[c] {
			return &ValidationError{Validator: v.Name(), Message: "duplicate choice " + c}
		}
		seen[c] = true
		if c == q.Answer {
			hits++
		}
	}
	if hits != 1 {
		return &ValidationError{Validator: v.Name(), Message: "answer must appear exactly once in choices"}
	}
	return nil
}
