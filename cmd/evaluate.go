package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Get feedback on an answer to a question",
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		answer, _ := cmd.Flags().GetString("answer")
		correct, _ := cmd.Flags().GetString("correct")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := newClient(st).EvaluateAnswer(cmd.Context(), question, answer, correct)
		if err != nil {
			return explain(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Value)
		return nil
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.StringP("question", "q", "", "The question that was asked")
	f.StringP("answer", "a", "", "The learner's answer")
	f.StringP("correct", "c", "", "The correct answer")
	_ = evaluateCmd.MarkFlagRequired("question")
	_ = evaluateCmd.MarkFlagRequired("answer")
	_ = evaluateCmd.MarkFlagRequired("correct")
}
