// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sabresdb/sabres"
	"github.com/sabresdb/sabres/internal/config"
	"github.com/sabresdb/sabres/internal/ui"
)

var (
	// Global flags
	dbPathFlag string
	configPath string

	// Resolved values
	resolvedDBPath string
	cfg            *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sabres",
	Short: "Sabres - inspect and manage object databases",
	Long: `Sabres is a schema-aware object store on SQLite.

This tool inspects and manages Sabres database files: the tables and
indices backing stored types, the registered type schemas, and per-type
object counts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip database resolution for commands that don't need it
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve database path: explicit flag > config
		resolvedDBPath = dbPathFlag
		if resolvedDBPath == "" {
			resolvedDBPath = cfg.DB
		}
		if resolvedDBPath == "" {
			return fmt.Errorf(`no database specified

Either:
  1. Use --db /path/to/database
  2. Set db in ~/.config/sabres/config.toml`)
		}

		// 'schema apply' may create the database; everything else inspects
		// an existing one.
		if cmd.Name() != "apply" {
			if _, err := os.Stat(resolvedDBPath); os.IsNotExist(err) {
				return fmt.Errorf("database not found: %s", resolvedDBPath)
			}
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to database file")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
}

func loadGlobalConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// openDatabase opens the resolved database.
func openDatabase() (*sabres.Database, error) {
	db, err := sabres.Open(resolvedDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", resolvedDBPath, err)
	}
	return db, nil
}
