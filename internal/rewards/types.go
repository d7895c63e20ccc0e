package rewards

// Kind identifies what a celebration is for.
type Kind string

const (
	KindCorrect    Kind = "correct"
	KindStreak     Kind = "streak"
	KindCompletion Kind = "completion"
)

// AllKinds returns all celebration kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindCorrect, KindStreak, KindCompletion}
}

// DisplayName returns a human-readable label for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindCorrect:
		return "Correct"
	case KindStreak:
		return "Streak"
	case KindCompletion:
		return "Complete"
	default:
		return string(k)
	}
}

// Icon returns the display icon for the kind.
func (k Kind) Icon() string {
	switch k {
	case KindCorrect:
		return "✓"
	case KindStreak:
		return "⚡"
	case KindCompletion:
		return "🏆"
	default:
		return "✦"
	}
}
