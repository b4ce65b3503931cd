package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clsung/codex-log/internal/config"
	"github.com/clsung/codex-log/internal/parser"
	"github.com/clsung/codex-log/internal/sessionparser"
	"github.com/clsung/codex-log/pkg/models"
)

var showSessionsDir string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "List sessions or print one session without rendering HTML",
		Long: `Show parsed sessions in a non-interactive format.
Without arguments: lists all sessions (grouped by project when --sessions-dir is set)
With a session ID: prints every entry of that session`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShow,
	}

	showCmd.Flags().StringVar(&historyPath, "history", "", "History log to read (default ~/.codex/history.jsonl)")
	showCmd.Flags().StringVar(&showSessionsDir, "sessions-dir", "", "Parse session files from this directory instead of the flat log")

	return showCmd
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	conversation, err := loadConversation(cfg, log)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return showSession(conversation, args[0])
	}

	if conversation.HasProjects() {
		showProjects(conversation)
		return nil
	}
	showSessions(conversation)
	return nil
}

// loadConversation parses whichever input the flags select.
func loadConversation(cfg *config.Config, log *zap.SugaredLogger) (*models.Conversation, error) {
	history := cfg.HistoryPath
	if historyPath != "" {
		history = historyPath
	}

	if showSessionsDir != "" {
		return sessionparser.New(history, log).ParseSessionsDirectory(showSessionsDir)
	}
	return parser.New(log).ParseFile(history)
}

func showSessions(conversation *models.Conversation) {
	if len(conversation.Sessions) == 0 {
		fmt.Println("No sessions found")
		return
	}

	fmt.Println("Sessions:")
	fmt.Println("=========")
	for i, session := range conversation.Sessions {
		fmt.Printf("%d. %s\n", i+1, session.SessionID)
		fmt.Printf("   Entries: %d\n", len(session.Entries))
		fmt.Printf("   Start: %s\n", session.StartTime().Format("2006-01-02 15:04"))
		fmt.Println()
	}
}

func showProjects(conversation *models.Conversation) {
	fmt.Println("Projects:")
	fmt.Println("=========")
	for i, project := range conversation.Projects {
		fmt.Printf("%d. %s\n", i+1, project.Name)
		if project.RepositoryURL != "" {
			fmt.Printf("   Repository: %s\n", project.RepositoryURL)
		}
		if project.WorkingDirectory != "" {
			fmt.Printf("   Path: %s\n", project.WorkingDirectory)
		}
		fmt.Printf("   Sessions: %d\n", len(project.Sessions))
		fmt.Printf("   Entries: %d\n", project.TotalEntries())
		fmt.Println()
	}
}

func showSession(conversation *models.Conversation, sessionID string) error {
	for _, session := range conversation.Sessions {
		if session.SessionID != sessionID {
			continue
		}

		fmt.Printf("Session %s (%s)\n", session.SessionID, session.ProjectName())
		fmt.Println("================================================")
		if len(session.Entries) == 0 {
			fmt.Println("No entries recorded for this session")
			return nil
		}
		for _, entry := range session.Entries {
			fmt.Printf("\n[%s]\n%s\n", entry.Time().Format("2006-01-02 15:04:05"), entry.Text)
		}
		return nil
	}
	return fmt.Errorf("session '%s' not found", sessionID)
}
