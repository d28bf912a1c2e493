package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/output"
	"github.com/manav03panchal/blockstage/internal/storage"
	"github.com/manav03panchal/blockstage/internal/validate"
)

var (
	historyFlagLimit int
	historyFlagClear bool
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"runs", "log"},
	Short:   "List recorded runs",
	Long: `List recorded runs, newest first. Only run summaries are kept; programs
are not saved.

Examples:
  blockstage history
  blockstage history --limit 5
  blockstage history show run:0190...
  blockstage history --clear`,
	RunE: runHistory,
}

// historyShowCmd shows one run.
var historyShowCmd = &cobra.Command{
	Use:               "show KEY",
	Short:             "Show one recorded run",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeRunKeys,
	RunE:              runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyFlagLimit, "limit", "l", 20, "Maximum runs to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyFlagClear, "clear", false, "Delete all recorded runs")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyFlagClear {
		n, err := ctx.RunRepo.Clear()
		if err != nil {
			return err
		}
		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]int{"deleted": n})
		}
		ctx.CLIFormatter().Success(pluralRuns(n) + " deleted")
		return nil
	}

	runs, err := ctx.History(historyFlagLimit)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintHistory(runs)
	}
	ctx.CLIFormatter().PrintHistory(runs)
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := validate.NonEmpty("key", args[0]); err != nil {
		return err
	}
	rec, err := ctx.RunRepo.Get(args[0])
	if storage.IsErrKeyNotFound(err) {
		return errors.NewUserErrorWithField("key", args[0], "run not found",
			errors.GetSuggestion(errors.ErrRunNotFound)).Because(errors.ErrRunNotFound)
	}
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewRunOutput(rec))
	}
	ctx.CLIFormatter().PrintRunSummary(rec)
	return nil
}

func pluralRuns(n int) string {
	if n == 1 {
		return "1 run"
	}
	return fmt.Sprintf("%d runs", n)
}
