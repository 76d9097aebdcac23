package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rankbench/internal/display"
	"rankbench/internal/format"
	"rankbench/internal/store"
)

var historyFlags struct {
	dbPath   string
	testName string
	status   string
	limit    int
	markdown bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and inspect the test run history",
}

var historyRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Append one test run record",
	RunE:  runHistoryRecord,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent run records",
	RunE:  runHistoryList,
}

func init() {
	pf := historyCmd.PersistentFlags()
	pf.StringVar(&historyFlags.dbPath, "db", store.DefaultDBPath, "Run-history SQLite database path")

	rf := historyRecordCmd.Flags()
	rf.StringVar(&historyFlags.testName, "test", "", "Test identifier (required)")
	rf.StringVar(&historyFlags.status, "status", "", "Run status: passed, failed or skipped (required)")
	_ = historyRecordCmd.MarkFlagRequired("test")
	_ = historyRecordCmd.MarkFlagRequired("status")

	lf := historyListCmd.Flags()
	lf.IntVar(&historyFlags.limit, "limit", 20, "Maximum records to show")
	lf.BoolVar(&historyFlags.markdown, "markdown", false, "Render as Markdown instead of an ASCII table")

	historyCmd.AddCommand(historyRecordCmd)
	historyCmd.AddCommand(historyListCmd)
}

func runHistoryRecord(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RecordRun(historyFlags.testName, historyFlags.status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "recorded %s: %s\n",
		historyFlags.testName, display.Status(historyFlags.status))
	return nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.RecentRuns(historyFlags.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs recorded")
		return nil
	}

	tb := format.NewTable(format.ModeFromFlag(historyFlags.markdown))
	tb.Header("Test", "Status", "Recorded")
	for _, r := range runs {
		tb.Row(r.TestName, display.Status(r.Status), r.RecordedAt.Format("2006-01-02 15:04:05"))
	}
	tb.Render(cmd.OutOrStdout())
	return nil
}
