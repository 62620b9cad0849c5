package cli

import (
	"fmt"

	"github.com/ppiankov/acevents/internal/dataset"
	"github.com/ppiankov/acevents/internal/pipeline"
	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <split-file>...",
	Short: "Show per-type counts of dataset files",
	Long: `Stats reads files written by 'acevents build' and prints the number of
records of each event type.

Example:
  acevents stats data/train.txt data/dev.txt data/test.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	renderer := pipeline.NewRenderer(cmd.OutOrStdout())

	for i, path := range args {
		records, err := dataset.LoadRecords(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		renderer.RenderCounts(path, records)
	}

	return nil
}
