package rewards

// BaseStreakThreshold is the first streak length that earns a milestone.
const BaseStreakThreshold = 5

var streakThresholds = []int{5, 10, 15, 20}

// NextStreakThreshold returns the next streak milestone above the current streak length.
func NextStreakThreshold(current int) int {
	for _, t := range streakThresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// IsStreakMilestone reports whether reaching length earns a streak celebration.
func IsStreakMilestone(length int) bool {
	return length >= BaseStreakThreshold && NextStreakThreshold(length-1) == length
}
