package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clsung/codex-log/internal/stats"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [history.jsonl]",
		Short: "Show per-session statistics aggregated with DuckDB",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	history := cfg.HistoryPath
	if len(args) == 1 {
		history = args[0]
	}

	sessionStats, err := stats.FetchSessionStats(history)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}

	if len(sessionStats) == 0 {
		fmt.Println("No sessions found")
		return nil
	}

	fmt.Printf("%-40s %8s %-17s %-17s\n", "SESSION", "ENTRIES", "FIRST", "LAST")
	totalEntries := 0
	for _, row := range sessionStats {
		fmt.Printf("%-40s %8d %-17s %-17s\n",
			row.SessionID,
			row.EntryCount,
			row.FirstEntry.Format("2006-01-02 15:04"),
			row.LastEntry.Format("2006-01-02 15:04"))
		totalEntries += row.EntryCount
	}
	fmt.Printf("\n%d sessions, %d entries\n", len(sessionStats), totalEntries)

	return nil
}
