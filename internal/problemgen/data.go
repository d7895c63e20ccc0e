package problemgen

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

var chartSeries = []struct {
	title  string
	labels []string
}{
	{"Goals scored", []string{"Mon", "Tue", "Wed", "Thu", "Fri"}},
	{"Books read", []string{"Ana", "Ben", "Cai", "Dev", "Eli"}},
	{"Rainy days", []string{"Jan", "Feb", "Mar", "Apr", "May"}},
}

// buildData reads a small bar chart. The values travel in Visual for
// front-ends that draw the chart and are also listed in the prompt.
func buildData(rng *rand.Rand, d Difficulty) draft {
	lvl := d.Level()
	series := chartSeries[rng.IntN(len(chartSeries))]
	n := len(series.labels)
	if lvl < 3 {
		n = 4
	}

	values := make([]int, n)
	var question, explanation string
	var ans int

	switch {
	case lvl == 3 && rng.IntN(2) == 0:
		// Mean: values are built symmetrically around it so it is exact.
		mean := between(rng, 4, 20)
		for i := 0; i+1 < n; i += 2 {
			delta := between(rng, 0, mean-1)
			values[i], values[i+1] = mean-delta, mean+delta
		}
		if n%2 == 1 {
			values[n-1] = mean
		}
		rng.Shuffle(n, func(i, j int) { values[i], values[j] = values[j], values[i] })
		ans = mean
		question = "What is the mean (average) value?"
		explanation = fmt.Sprintf("The values add to %d; %d ÷ %d = %d.", sum(values), sum(values), n, ans)
	case lvl == 3:
		for i := range values {
			values[i] = between(rng, 1, 30)
		}
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		ans = sorted[n/2]
		question = "What is the median value?"
		explanation = fmt.Sprintf("Sorted: %s; the middle value is %d.", joinInts(sorted), ans)
	case lvl == 2 && rng.IntN(2) == 0:
		fill(rng, values, 20)
		ans = slices.Max(values) - slices.Min(values)
		question = "What is the range (highest minus lowest)?"
		explanation = fmt.Sprintf("%d - %d = %d.", slices.Max(values), slices.Min(values), ans)
	case lvl == 2:
		fill(rng, values, 20)
		ans = sum(values)
		question = "What is the total across all bars?"
		explanation = fmt.Sprintf("%s = %d.", strings.ReplaceAll(joinInts(values), ", ", " + "), ans)
	default:
		fill(rng, values, 10)
		i, j := slices.Index(values, slices.Max(values)), slices.Index(values, slices.Min(values))
		ans = values[i] - values[j]
		question = fmt.Sprintf("How many more does %s have than %s?", series.labels[i], series.labels[j])
		explanation = fmt.Sprintf("%d - %d = %d.", values[i], values[j], ans)
	}

	labels := series.labels[:n]
	pairs := make([]string, n)
	for i := range values {
		pairs[i] = fmt.Sprintf("%s %d", labels[i], values[i])
	}
	return draft{
		text:        fmt.Sprintf("%s: %s. %s", series.title, strings.Join(pairs, ", "), question),
		answer:      strconv.Itoa(ans),
		answerType:  AnswerTypeInteger,
		family:      nearFamily(ans),
		explanation: explanation,
		visual:      map[string]any{"chart": "bar", "title": series.title, "labels": labels, "values": values},
	}
}

// fill draws distinct values in [1, hi] so max and min are unambiguous.
func fill(rng *rand.Rand, values []int, hi int) {
	perm := rng.Perm(hi)
	for i := range values {
		values[i] = perm[i] + 1
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
