// Package commands implements the pasdb CLI's command tree.
package commands

import (
	"fmt"

	"github.com/marmos91/pasdb/internal/logger"
	"github.com/marmos91/pasdb/pkg/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// cfg is the configuration resolved by rootCmd's PersistentPreRunE. It
// starts out holding the built-in defaults so a command's RunE can also be
// called directly (as the tests in this package do) without going through
// cobra's Execute dispatch first.
var cfg = config.GetDefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "pasdb",
	Short: "pasdb - a persistent address space database",
	Long: `pasdb manages a single-file persistent heap image: a bump allocator
plus free list, with self-describing type/slot/name tables, a string
interning dictionary, and container and JSON-DOM layers on top.

Use "pasdb [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("pasdb: %w", err)
		}
		cfg = loaded

		if err := logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		}); err != nil {
			return fmt.Errorf("pasdb: %w", err)
		}
		logger.Debug("configuration loaded", "data_dir", cfg.DataDir, "config_file", cfgFile)
		return nil
	},
}

// Execute runs the root command. Called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pasdb/config.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(bumpCmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
