package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/script"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text|-]",
	Short: "Count hiragana, katakana and kanji in a text",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readText(cmd, args)
		if err != nil {
			return err
		}
		a := script.Classify(text)

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(a)
		}

		fmt.Fprintf(out, "Length:    %d\n", a.Length)
		fmt.Fprintf(out, "Hiragana:  %d\n", a.Hiragana)
		fmt.Fprintf(out, "Katakana:  %d\n", a.Katakana)
		fmt.Fprintf(out, "Kanji:     %d\n", a.Kanji)
		fmt.Fprintf(out, "Japanese:  %v (%.0f%%)\n", a.HasJapanese, a.Ratio()*100)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the analysis as JSON")
}
