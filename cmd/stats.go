package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		usage, err := st.Counters().UsageStats(ctx)
		if err != nil {
			return fmt.Errorf("read usage: %w", err)
		}
		progress, err := st.Counters().Progress(ctx)
		if err != nil {
			return fmt.Errorf("read progress: %w", err)
		}
		saved, err := st.Vocabulary().Count(ctx)
		if err != nil {
			return fmt.Errorf("count words: %w", err)
		}
		level, err := levels(st).Level(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Level:            %s\n", level)
		fmt.Fprintf(out, "API calls:        %d\n", usage.Count)
		if usage.LastUsed != nil {
			fmt.Fprintf(out, "Last used:        %s\n", usage.LastUsed.Local().Format("2006-01-02 15:04:05"))
		} else {
			fmt.Fprintln(out, "Last used:        never")
		}
		fmt.Fprintf(out, "Exercises done:   %d\n", progress.ExercisesDone)
		fmt.Fprintf(out, "Words learned:    %d\n", progress.WordsLearned)
		fmt.Fprintf(out, "Review list:      %d word(s)\n", saved)
		return nil
	},
}
