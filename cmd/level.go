package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show or change the learner level",
	RunE: func(cmd *cobra.Command, args []string) error {
		return levelGetCmd.RunE(cmd, args)
	},
}

var levelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the learner level",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		l, err := levels(st).Level(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), l)
		return nil
	},
}

var levelSetCmd = &cobra.Command{
	Use:       "set <beginner|intermediate|advanced>",
	Short:     "Change the learner level",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"beginner", "intermediate", "advanced"},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		l, err := levels(st).SetLevel(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Level set to %s\n", l)
		return nil
	},
}

func init() {
	levelCmd.AddCommand(levelGetCmd)
	levelCmd.AddCommand(levelSetCmd)
}
