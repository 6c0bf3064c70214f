package commands

import (
	"fmt"

	"github.com/marmos91/pasdb/internal/logger"
	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <path> <name>",
	Short: "Increment a named counter and re-save the image",
	Long: `Open (or create) the image at path, find or create a named uint64
counter, increment it, and save. This is the demo fixture entry point: it
exercises Create[T]/Find[T]/Save but is not part of the core allocator.

Examples:
  pasdb bump ./heap.pas requests_served`,
	Args: cobra.ExactArgs(2),
	RunE: runBump,
}

func runBump(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]

	s, err := pas.Open(path)
	if err != nil {
		logger.Error("failed to open image", "path", path, "error", err)
		return fmt.Errorf("pasdb bump: %w", err)
	}

	off := pas.FindTyped[uint64](s, name)
	if off == pas.InvalidOffset {
		off = pas.Create[uint64](s, name)
		if off == pas.InvalidOffset {
			return fmt.Errorf("pasdb bump: failed to create counter %q", name)
		}
		logger.Debug("created counter", "name", name, "path", path)
	}

	counter := pas.Resolve[uint64](s, off)
	*counter++
	newValue := *counter

	if err := s.Save(); err != nil {
		logger.Error("failed to save image", "path", path, "error", err)
		return fmt.Errorf("pasdb bump: %w", err)
	}

	logger.Debug("counter incremented", "name", name, "value", newValue)
	fmt.Printf("%s = %d\n", name, newValue)
	return nil
}
