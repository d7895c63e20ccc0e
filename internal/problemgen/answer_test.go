package problemgen

import "testing"

func TestCheckAnswer(t *testing.T) {
	q := &Question{Answer: "3/4", Choices: []string{"4/3", "3/4", "1/2", "2/3"}}
	tests := []struct {
		input string
		want  bool
	}{
		{"3/4", true},
		{" 3/4 ", true},
		{"6/8", false},
		{"4/3", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.input, q); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
	if CheckAnswer("3/4", nil) {
		t.Error("nil question should never match")
	}
}

func TestChoiceByIndex(t *testing.T) {
	q := &Question{Answer: "b", Choices: []string{"a", "b", "c", "d"}}
	tests := []struct {
		input, want string
	}{
		{"1", "a"},
		{"4", "d"},
		{"5", "5"},
		{"0", "0"},
		{"b", "b"},
	}
	for _, tt := range tests {
		if got := ChoiceByIndex(tt.input, q); got != tt.want {
			t.Errorf("ChoiceByIndex(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := AnswerIndex(q); got != 1 {
		t.Errorf("AnswerIndex = %d, want 1", got)
	}
}
