package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/caves/internal/app"
	"go.trai.ch/caves/internal/core/domain"
)

// defaultManifest is read when no edge files are given.
const defaultManifest = "caves.yaml"

func (c *CLI) newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [edge files...]",
		Short: "Count paths for every puzzle and mode",
		Long: "Count the start-to-end paths of each puzzle under the strict and relaxed revisit modes.\n" +
			"Puzzles come from the manifest, or from the given edge files when any are listed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, _ := cmd.Flags().GetString("config")
			puzzles, _ := cmd.Flags().GetStringSlice("puzzle")
			modeNames, _ := cmd.Flags().GetStringSlice("mode")
			sequential, _ := cmd.Flags().GetBool("sequential")
			benchmark, _ := cmd.Flags().GetBool("benchmark")
			progress, _ := cmd.Flags().GetString("progress")
			watch, _ := cmd.Flags().GetBool("watch")
			verbose, _ := cmd.Flags().GetCount("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json")

			modes := make([]domain.Mode, 0, len(modeNames))
			for _, name := range modeNames {
				m, err := domain.ParseMode(name)
				if err != nil {
					return err
				}
				modes = append(modes, m)
			}

			return c.app.Run(cmd.Context(), app.RunOptions{
				Manifest:   manifest,
				Files:      args,
				Puzzles:    puzzles,
				Modes:      modes,
				Sequential: sequential,
				Benchmark:  benchmark,
				Verbose:    verbose,
				JSON:       jsonLogs,
				Progress:   progress,
				Watch:      watch,
			})
		},
	}

	cmd.Flags().StringP("config", "c", defaultManifest, "Path to the puzzle manifest")
	cmd.Flags().StringSliceP("puzzle", "p", nil, "Only count the named puzzles")
	cmd.Flags().StringSliceP("mode", "m", nil, "Revisit modes to count: strict, relaxed (default all)")
	cmd.Flags().Bool("sequential", false, "Count one job at a time")
	cmd.Flags().BoolP("benchmark", "b", false, "Time each count over repeated runs")
	cmd.Flags().String("progress", "auto", "Progress output: auto, plain, or none")
	cmd.Flags().BoolP("watch", "w", false, "Count again whenever an input file changes")
	return cmd
}
