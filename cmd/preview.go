package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/stemarcade/internal/problemgen"
	"github.com/abhisek/stemarcade/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated questions (no database)",
	Long: `Generate questions for one kind and difficulty and print them, or answer
them interactively with --interactive.

Nothing is recorded. Useful for checking question quality and distractors.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("kind", "", "Question kind (default: every kind round-robin)")
	previewCmd.Flags().String("difficulty", "easy", "Difficulty: easy, medium or hard")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Uint64("seed", 0, "Generator seed (0 = random)")
	previewCmd.Flags().BoolP("interactive", "i", false, "Answer each question on stdin")
}

func runPreview(cmd *cobra.Command, args []string) error {
	kindVal, _ := cmd.Flags().GetString("kind")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if count < 1 {
		return fmt.Errorf("count must be positive, got %d", count)
	}
	difficulty, err := problemgen.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}
	kinds := problemgen.AllKinds()
	if kindVal != "" {
		k, err := problemgen.ParseKind(kindVal)
		if err != nil {
			return err
		}
		kinds = []problemgen.Kind{k}
	}

	factory := problemgen.NewFactory(problemgen.NewRand(seed), problemgen.DefaultConfig())
	questions, err := factory.BuildSet(kinds, difficulty, count)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var correct, answered int

	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d (%s, %s) ──\n", i+1, len(questions), q.Kind, q.Difficulty)
		fmt.Fprintln(out, q.Text)
		for j, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		if !interactive {
			fmt.Fprintf(out, "%s %s\n", theme.Hint.Render("Answer:"), q.Answer)
			if q.Explanation != "" {
				fmt.Fprintf(out, "%s %s\n", theme.Hint.Render("Explanation:"), q.Explanation)
			}
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := problemgen.ChoiceByIndex(scanner.Text(), q)
		if strings.TrimSpace(answer) == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			continue
		}
		answered++

		if problemgen.CheckAnswer(answer, q) {
			correct++
			fmt.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		} else {
			fmt.Fprintf(out, "%s Answer: %s\n", theme.Incorrect.Render("✗ Wrong."), q.Answer)
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}

	if interactive {
		fmt.Fprintf(out, "Score: %d/%d correct\n", correct, answered)
	}
	return nil
}
