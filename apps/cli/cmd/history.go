package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/storyspec/packages/core/config"
	"github.com/abdul-hamid-achik/storyspec/packages/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past runs",
	Long:  `Inspect runs stored in the history database.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  historyListCommand,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  historyShowCommand,
}

var historySummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Aggregate outcomes across all stored runs",
	RunE:  historySummaryCommand,
}

var (
	historyDBFlag     string
	historyLimitFlag  int
	historyConfigFlag string
	historyOutputFlag string
)

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDBFlag, "db", getEnvString("STORYSPEC_HISTORY_DB", ""), "Path to the history database (env: STORYSPEC_HISTORY_DB)")
	historyCmd.PersistentFlags().StringVar(&historyConfigFlag, "config", getEnvString("STORYSPEC_CONFIG", ""), "Path to config file (env: STORYSPEC_CONFIG)")
	historyListCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	historyShowCmd.Flags().StringVarP(&historyOutputFlag, "output", "o", "console", "Output format: console, text, json, junit, tap")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySummaryCmd)
}

func openStore(cmd *cobra.Command) (*history.Store, error) {
	cmd.SilenceUsage = true

	cfg, err := config.LoadConfig(historyConfigFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	path := historyDBFlag
	if path == "" {
		path = cfg.GetHistoryDB()
	}
	return history.Open(path)
}

func historyListCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs stored.")
		return nil
	}

	w := cmd.OutOrStdout()
	for _, rec := range records {
		status := "passed"
		if !rec.Summary.Passed() {
			status = "failed"
		}
		fmt.Fprintf(w, "%s  %s  %-6s  %d scenarios (%d passed, %d failed)  %s\n",
			rec.ID,
			rec.CreatedAt.Format(time.RFC3339),
			status,
			rec.Summary.Scenarios,
			rec.Summary.ScenariosPassed,
			rec.Summary.ScenariosFailed,
			strings.Join(rec.FeatureNames, ", "),
		)
	}
	return nil
}

func historyShowCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := store.Load(args[0])
	if err != nil {
		return err
	}

	formatter, err := newFormatter(historyOutputFlag, cmd.OutOrStdout(), false, false)
	if err != nil {
		return err
	}
	return formatter.Format(doc)
}

func historySummaryCommand(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sum, err := store.Summary()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Features:  %d\n", sum.Features)
	fmt.Fprintf(w, "Scenarios: %d (%d passed, %d failed)\n",
		sum.Scenarios, sum.ScenariosPassed, sum.ScenariosFailed)
	fmt.Fprintf(w, "Steps:     %d (%d passed, %d failed, %d not run)\n",
		sum.Steps, sum.StepsPassed, sum.StepsFailed, sum.StepsNotRun)
	return nil
}
