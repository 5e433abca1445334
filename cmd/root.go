package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/config"
	"github.com/abhisek/kotoba/internal/llm"
	"github.com/abhisek/kotoba/internal/logging"
	"github.com/abhisek/kotoba/internal/settings"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/tutor"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "Learn Japanese from real text",
	Long: "kotoba classifies the scripts in a Japanese text sample and asks a " +
		"generative model for exercises, vocabulary and answer feedback.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides KOTOBA_DB env var)")
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/kotoba/config.toml)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("provider", "", "LLM provider: "+strings.Join(llm.Providers, ", "))
	pf.String("model", "", "Model name for the selected provider")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(vocabCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// appConfig and appLogger are set by setup before any command runs.
var (
	appConfig *config.Config
	appLogger *slog.Logger
)

func setup(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	provider, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")

	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: path,
		Overrides: config.Overrides{
			Provider: provider,
			Model:    model,
			LogLevel: logLevel,
		},
	})
	if err != nil {
		return err
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	appConfig, appLogger = cfg, logger
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KOTOBA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func credentials(st *store.Store) *settings.CredentialChain {
	return settings.NewCredentialChain(st.Settings(), appConfig.LLM.Provider, appConfig.LLM.APIKey)
}

func levels(st *store.Store) *settings.LevelSource {
	return settings.NewLevelSource(st.Settings(), appConfig.Learner.Level)
}

// newClient wires the tutor client to the store for credentials, usage
// accounting and the LLM event log.
func newClient(st *store.Store) *tutor.Client {
	factory := llm.NewFactory(appConfig.ProviderConfig(), st.EventRepo(), appLogger)
	cfg := tutor.DefaultConfig()
	cfg.Timeout = appConfig.LLM.Timeout
	return tutor.NewClient(credentials(st), factory, st.Counters(), cfg, appLogger)
}

// resolveLevel prefers the --level flag, then the stored or configured level.
func resolveLevel(cmd *cobra.Command, st *store.Store) (tutor.Level, error) {
	if name, _ := cmd.Flags().GetString("level"); name != "" {
		return tutor.ParseLevel(name)
	}
	return levels(st).Level(cmd.Context())
}

// readText joins args, or reads stdin when there are none or the only
// argument is "-".
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

// explain prints the learner-facing message for err and returns err.
func explain(cmd *cobra.Command, err error) error {
	if msg := tutor.FailureMessage(err); msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	return err
}
