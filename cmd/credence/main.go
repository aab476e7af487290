package main

import (
	"fmt"
	"os"

	"github.com/credalab/credence/internal/config"
	"github.com/credalab/credence/internal/service"
	"github.com/credalab/credence/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRun  bool
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "credence",
		Short: "Sort files into folders with a naive Bayes classifier",
		Long: `credence classifies files against candidate folders using the contents
of the files already inside each folder as training data.`,
		SilenceUsage: true,
	}

	classifyCmd = &cobra.Command{
		Use:   "classify <file> <folder>...",
		Short: "Print the folder a file most likely belongs to",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runClassify,
	}

	sortCmd = &cobra.Command{
		Use:   "sort <folder>...",
		Short: "Move each folder's stray files into its best-matching subfolder",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSort,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log classification details")
	sortCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report moves without renaming anything")
	rootCmd.AddCommand(classifyCmd, sortCmd)
}

func main() {
	_ = config.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newSorter() *service.SorterService {
	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
	}
	sorter := service.NewSorterService(store.NewCorpusStore(), logger)
	sorter.DryRun = dryRun
	return sorter
}

func runClassify(cmd *cobra.Command, args []string) error {
	sorter := newSorter()

	folder, err := sorter.ClassifyFile(cmd.Context(), args[0], args[1:])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), folder)
	return nil
}

func runSort(cmd *cobra.Command, args []string) error {
	sorter := newSorter()

	for _, dir := range args {
		moves, err := sorter.SortFolder(cmd.Context(), dir)
		for _, m := range moves {
			if m.Moved {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", m.File, m.Destination)
			} else if m.Destination != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (skipped: %s)\n", m.File, m.Destination, m.Reason)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (skipped: %s)\n", m.File, m.Reason)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
