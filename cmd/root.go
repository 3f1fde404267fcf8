package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/dropwatch/internal/config"
	"github.com/abhisek/dropwatch/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dropwatch",
	Short: "Student dropout risk dashboard",
	Long: "Dropwatch is a terminal dashboard that explores a student table, scores dropout risk " +
		"and suggests intervention programmes.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("data", "", "Path to the student CSV (overrides DROPWATCH_DATA, default "+config.DefaultDataPath+")")
	pf.String("db", "", "Path to SQLite database file (overrides DROPWATCH_DB env var)")
	pf.String("config", "", "Path to YAML config file (overrides DROPWATCH_CONFIG)")
	pf.String("cache", "", "Model cache backend: sqlite, redis or memory (overrides DROPWATCH_CACHE)")
	pf.String("redis", "", "Redis address host:port for --cache redis")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the configuration: defaults, then the YAML file, then
// DROPWATCH_* variables, then command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		cfg.DataPath = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("cache"); v != "" {
		cfg.Cache.Backend = v
	}
	if v, _ := cmd.Flags().GetString("redis"); v != "" {
		if err := cfg.Cache.SetRedisAddr(v); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// openStore loads the configuration and opens the history database.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	path, err := store.ResolvePath(cfg.DBPath)
	if err != nil {
		return nil, cfg, err
	}
	st, err := store.Open(cmd.Context(), path)
	return st, cfg, err
}
