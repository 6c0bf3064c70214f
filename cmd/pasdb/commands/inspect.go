package commands

import (
	"fmt"

	"github.com/marmos91/pasdb/internal/logger"
	"github.com/marmos91/pasdb/pkg/pas"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "Print summary statistics for an image",
	Long: `Open an image, validate its header and internal tables, and print its
data-area size, bump offset, and table sizes.

Examples:
  pasdb inspect ./heap.pas`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	s, err := pas.Open(path)
	if err != nil {
		logger.Error("failed to open image", "path", path, "error", err)
		return fmt.Errorf("pasdb inspect: %w", err)
	}

	if !s.Validate() {
		logger.Error("image failed validation", "path", path)
		return fmt.Errorf("pasdb inspect: %s does not contain a valid image", path)
	}

	stats := s.Stats()
	logger.Debug("image validated", "path", path, "slots", stats.SlotCount, "names", stats.NameCount)

	fmt.Printf("Image:           %s\n", path)
	fmt.Printf("Data area size:  %d bytes\n", stats.DataAreaSize)
	fmt.Printf("Bump offset:     %d\n", stats.Bump)
	fmt.Printf("Slots:           %d\n", stats.SlotCount)
	fmt.Printf("Names:           %d\n", stats.NameCount)
	fmt.Printf("Free-list runs:  %d\n", stats.FreeListCount)
	fmt.Printf("Dictionary:      %v\n", stats.HasDictionary)

	return nil
}
