package commands

import (
	"fmt"
	"os"

	"github.com/marmos91/pasdb/internal/logger"
	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Create an empty image file",
	Long: `Create a fresh PAS image at path: an empty header plus the four
internal tables (type vector, slot map, name map, free list), ready for
Create[T]/CreateArray[T] calls.

The initial data area size, table capacity, and growth factor come from
the loaded configuration's allocator section (--config, or the default
config search path); see "pasdb --help" for where that's resolved from.

Examples:
  pasdb init ./heap.pas`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("pasdb init: %s already exists", path)
	}

	alloc := cfg.Allocator
	logger.Debug("creating image",
		"path", path,
		"initial_data_area_size", alloc.InitialDataAreaSize.Uint64(),
		"initial_table_capacity", alloc.InitialTableCapacity,
		"growth_factor", alloc.GrowthFactor,
	)

	s := pas.New(
		pas.WithInitialDataAreaSize(alloc.InitialDataAreaSize.Uint64()),
		pas.WithInitialTableCapacity(alloc.InitialTableCapacity),
		pas.WithGrowthFactor(alloc.GrowthFactor),
	)
	if err := s.SaveAs(path); err != nil {
		return fmt.Errorf("pasdb init: %w", err)
	}

	logger.Info("image initialized", "path", path)
	fmt.Printf("Initialized empty image at %s\n", path)
	return nil
}
