// Package cli implements the filepurge CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filepurge/filepurge/internal/config"
	"github.com/filepurge/filepurge/internal/logging"
	"github.com/filepurge/filepurge/internal/store"
)

var (
	cfgPath    string
	dbPath     string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "filepurge",
	Short: "Metadata-driven file cleanup recommendations",
	Long: "Scans a directory, classifies files as keep or delete candidates from " +
		"filesystem metadata alone, flags anomalies, and learns from your decisions. " +
		"Purging simulates by default and never touches system folders.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config path (default: $FILEPURGE_CONFIG or ~/.filepurge/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "History database path (default: <data_dir>/filepurge.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func configPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	return config.DefaultPath()
}

// loadConfig reads the config and wires up logging. Commands call it first.
func loadConfig() config.Config {
	cfg, err := config.Load(configPath())
	if err != nil {
		exitErr("load config", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		exitErr("setup logging", err)
	}
	return cfg
}

func getDBPath(cfg config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("FILEPURGE_DB"); env != "" {
		return env
	}
	return cfg.DBPath()
}

func openStore(cfg config.Config) *store.SQLiteStore {
	s, err := store.NewSQLiteStore(getDBPath(cfg))
	if err != nil {
		exitErr("open store", err)
	}
	return s
}

func textOutput() bool {
	return formatFlag == "text"
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
