package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/script"
	"github.com/abhisek/kotoba/internal/store"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab [text|-]",
	Short: "Extract a vocabulary list from a Japanese text",
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

		res, err := newClient(st).RequestVocabulary(ctx, text, level)
		if err != nil {
			return explain(cmd, err)
		}
		list := res.Value
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(list); err != nil {
				return err
			}
		} else if len(list.Words) == 0 {
			fmt.Fprintln(out, "No vocabulary found.")
		} else {
			t := newTable(out,
				column{"Kanji", 10, false},
				column{"Reading", 14, false},
				column{"Meaning", 28, false},
				column{"Level", 5, false},
				column{"Type", 10, false},
			)
			t.header()
			for _, w := range list.Words {
				t.row(w.Kanji, w.Reading, w.Meaning, w.Level, w.PartOfSpeech)
			}
		}

		if save, _ := cmd.Flags().GetBool("save"); save && len(list.Words) > 0 {
			added, err := st.Vocabulary().SaveWords(ctx, list.ReviewWords())
			if err != nil {
				return fmt.Errorf("save vocabulary: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d new word(s) to the review list.\n", added)
		}
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List words saved to the review list",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		words, err := st.Vocabulary().ListWords(cmd.Context(), level, limit)
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(words) == 0 {
			fmt.Fprintln(out, "The review list is empty. Save words with \"kotoba vocab --save\".")
			return nil
		}
		printWords(cmd, words)
		return nil
	},
}

func printWords(cmd *cobra.Command, words []store.Word) {
	t := newTable(cmd.OutOrStdout(),
		column{"Kanji", 10, false},
		column{"Reading", 14, false},
		column{"Meaning", 28, false},
		column{"Level", 5, false},
		column{"Seen", 4, true},
		column{"Last seen", 10, false},
	)
	t.header()
	for _, w := range words {
		t.row(w.Kanji, w.Reading, w.Meaning, w.Level,
			strconv.Itoa(w.SeenCount), w.LastSeenAt.Local().Format("2006-01-02"))
	}
}

func init() {
	f := vocabCmd.Flags()
	f.StringP("level", "l", "", "Learner level: beginner, intermediate, advanced")
	f.Bool("json", false, "Print the list as JSON")
	f.Bool("save", false, "Save the words to the review list")

	reviewCmd.Flags().String("level", "", "Only show words of this JLPT level (e.g. N5)")
	reviewCmd.Flags().IntP("limit", "n", 50, "Number of words to show (0 = all)")
}
