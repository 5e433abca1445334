package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/settings"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key|-]",
	Short: "Validate and store an API key (reads stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := readText(cmd, args)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider := appConfig.LLM.Provider
		if err := settings.SaveAPIKey(cmd.Context(), st.Settings(), provider, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s key %s\n", provider, settings.MaskKey(key))
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := settings.ClearAPIKey(cmd.Context(), st.Settings(), appConfig.LLM.Provider); err != nil {
			return fmt.Errorf("clear key: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Stored key removed.")
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which API key would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider := appConfig.LLM.Provider
		key, source, err := credentials(st).Resolve(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider:  %s\n", provider)
		if key == "" {
			fmt.Fprintln(out, "Key:       (none)")
			return nil
		}
		fmt.Fprintf(out, "Key:       %s\n", settings.MaskKey(key))
		fmt.Fprintf(out, "Source:    %s\n", source)
		if err := settings.ValidateAPIKey(provider, key); err != nil {
			fmt.Fprintf(out, "Warning:   %v\n", err)
		}
		return nil
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyClearCmd)
	keyCmd.AddCommand(keyStatusCmd)
}
