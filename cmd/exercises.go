package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/practice"
	"github.com/abhisek/kotoba/internal/script"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
	"github.com/abhisek/kotoba/internal/ui/components"
)

var errNoJapanese = errors.New("text contains no Japanese script")

var exercisesCmd = &cobra.Command{
	Use:   "exercises [text|-]",
	Short: "Generate multiple-choice exercises for a Japanese text",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		if !script.ContainsJapanese(text) {
			return errNoJapanese
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		level, err := resolveLevel(cmd, st)
		if err != nil {
			return err
		}

		res, err := newClient(st).RequestExercises(ctx, text, level)
		if err != nil {
			return explain(cmd, err)
		}
		set := res.Value

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(set)
		}

		if interactive, _ := cmd.Flags().GetBool("practice"); !interactive {
			printExercises(cmd.OutOrStdout(), set)
			return nil
		}

		score, err := practice.Run(ctx, set)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d\n", score.Correct, score.Total)
		return recordScore(ctx, st.Counters(), score)
	},
}

// recordScore counts every answered question as one exercise done and
// every correct answer as one word learned.
func recordScore(ctx context.Context, counters store.CounterRepo, score practice.Score) error {
	if score.Answered == 0 {
		return nil
	}
	if err := counters.AddProgress(ctx, score.Correct, score.Answered); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}
	return nil
}

func printExercises(w io.Writer, set tutor.ExerciseSet) {
	for i, ex := range set.Exercises {
		if ex.IsInfo() {
			fmt.Fprintf(w, "%d. %s\n   %s\n\n", i+1, ex.Question, ex.Message)
			continue
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, ex.Question)
		for j, opt := range ex.Options {
			fmt.Fprintf(w, "   %s) %s\n", components.Label(j), opt)
		}
		fmt.Fprintf(w, "   Answer: %s) %s\n", components.Label(ex.CorrectAnswer), ex.CorrectOption())
		if ex.Explanation != "" {
			fmt.Fprintf(w, "   %s\n", ex.Explanation)
		}
		fmt.Fprintln(w)
	}

	if len(set.Vocabulary) > 0 {
		fmt.Fprintln(w, "Key words")
		t := newTable(w, column{"Word", 12, false}, column{"Reading", 14, false}, column{"Meaning", 30, false}, column{"Level", 5, false})
		t.header()
		for _, kw := range set.Vocabulary {
			t.row(kw.Word, kw.Reading, kw.Meaning, kw.Level)
		}
		fmt.Fprintln(w)
	}

	if len(set.Grammar) > 0 {
		fmt.Fprintln(w, "Grammar")
		for _, g := range set.Grammar {
			fmt.Fprintf(w, "  %s  %s\n", g.Pattern, g.Explanation)
		}
	}
}

func init() {
	f := exercisesCmd.Flags()
	f.StringP("level", "l", "", "Learner level: beginner, intermediate, advanced")
	f.Bool("json", false, "Print the exercise set as JSON")
	f.Bool("practice", false, "Answer the exercises interactively")
	exercisesCmd.MarkFlagsMutuallyExclusive("json", "practice")
}
