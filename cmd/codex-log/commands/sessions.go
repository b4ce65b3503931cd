package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clsung/codex-log/internal/converter"
)

var historyPath string

// NewSessionsCommand creates the sessions command
func NewSessionsCommand() *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions [sessions-dir] <output.html>",
		Short: "Convert session files to HTML with project grouping",
		Long: `Convert a directory tree of per-session metadata files to HTML.

Sessions are cross-referenced against the history log and grouped into
projects by git remote or working directory. When sessions-dir is omitted,
the configured default (~/.codex/sessions) is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSessions,
	}

	sessionsCmd.Flags().StringVar(&historyPath, "history", "", "History log to cross-reference entries from (default ~/.codex/history.jsonl)")

	return sessionsCmd
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	sessionsDir := cfg.SessionsDir
	outputPath := args[0]
	if len(args) == 2 {
		sessionsDir = args[0]
		outputPath = args[1]
	}

	if _, err := os.Stat(sessionsDir); err != nil {
		return fmt.Errorf("sessions directory %s does not exist: %w", sessionsDir, err)
	}

	history := cfg.HistoryPath
	if historyPath != "" {
		history = historyPath
	}

	return converter.New(history, log).ConvertSessions(sessionsDir, outputPath)
}
