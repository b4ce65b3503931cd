package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clsung/codex-log/internal/parser"
	"github.com/clsung/codex-log/internal/sessionparser"
	"github.com/clsung/codex-log/internal/tui"
	"github.com/clsung/codex-log/pkg/models"
)

// NewBrowseCommand creates the browse command
func NewBrowseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [input]",
		Short: "Browse parsed sessions interactively",
		Long: `Browse projects, sessions, and entries in an interactive terminal UI.
INPUT is a history.jsonl file or a sessions directory; it defaults to the
configured history log.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	inputPath := cfg.HistoryPath
	if len(args) == 1 {
		inputPath = args[0]
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("input %s does not exist: %w", inputPath, err)
	}

	var conversation *models.Conversation
	if info.IsDir() {
		conversation, err = sessionparser.New(cfg.HistoryPath, log).ParseSessionsDirectory(inputPath)
	} else {
		conversation, err = parser.New(log).ParseFile(inputPath)
	}
	if err != nil {
		return err
	}

	return tui.Browse(conversation)
}
